// Package notify publishes feed snapshots to NATS subjects.
package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/nyctransithub/transit-hub/internal/logging"
)

// Snapshot kinds
const (
	KindTrains = "trains"
	KindAlerts = "alerts"
)

// Envelope wraps one published snapshot
type Envelope struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	FetchedAt time.Time `json:"fetched_at"`
	Count     int       `json:"count"`
	Items     any       `json:"items"`
}

// Subject builds "<prefix>.<kind>.<id>". Characters that NATS treats as
// token separators or wildcards are replaced in id.
func Subject(prefix, kind, id string) string {
	id = strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t':
			return '_'
		}
		return r
	}, id)
	if id == "" {
		id = "_"
	}
	return prefix + "." + kind + "." + id
}

// Conn is the part of *nats.Conn the publisher needs
type Conn interface {
	Publish(subj string, data []byte) error
}

// Publisher encodes envelopes and sends them to NATS
type Publisher struct {
	conn   Conn
	nc     *nats.Conn
	prefix string
	log    logging.Logger
	now    func() time.Time
}

// NewPublisher wraps an existing connection
func NewPublisher(conn Conn, prefix string, log logging.Logger) *Publisher {
	if log == nil {
		log = logging.Nop()
	}
	return &Publisher{conn: conn, prefix: prefix, log: log, now: time.Now}
}

// Connect dials the NATS server at url
func Connect(url, prefix string, log logging.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("transithub"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	p := NewPublisher(nc, prefix, log)
	p.nc = nc
	return p, nil
}

// Publish sends items as one envelope on the subject for (kind, id)
func (p *Publisher) Publish(kind, id string, items any, count int) error {
	env := Envelope{
		Kind:      kind,
		ID:        id,
		FetchedAt: p.now().UTC(),
		Count:     count,
		Items:     items,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", kind, id, err)
	}
	subject := Subject(p.prefix, kind, id)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.log.Debug("snapshot published", "subject", subject, "count", count, "bytes", len(data))
	return nil
}

// Close drains the connection when the publisher owns it
func (p *Publisher) Close() {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			p.log.Warn("nats drain failed", "error", err)
			p.nc.Close()
		}
	}
}
