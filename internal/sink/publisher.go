package sink

import (
	"log"

	"github.com/nats-io/nats.go"
)

// Publisher streams each summary record to a NATS subject. Records are
// already self-delimited JSON lines, so they are published as-is.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher connects to the NATS server and returns a publisher for the
// given subject.
func NewPublisher(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", url)
	return &Publisher{nc: nc, subject: subject}, nil
}

// WriteRecord publishes one summary record.
func (p *Publisher) WriteRecord(record []byte) error {
	return p.nc.Publish(p.subject, record)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() error {
	if p.nc != nil {
		err := p.nc.Drain()
		log.Println("NATS connection drained and closed.")
		return err
	}
	return nil
}
