package puzio

import (
	"time"

	"github.com/jask/puzboard/internal/puz"
)

// CurrentVersion is the revision written by Write.
const CurrentVersion = 4

// metaField is one header or trailer field and the first revision carrying it.
type metaField struct {
	name  string
	since int
	read  func(d *decoder, m *puz.Meta)
	write func(e *encoder, m *puz.Meta)
}

// cellState is the per-cell solve state stored beside the .puz grid.
type cellState struct {
	cheated   bool
	responder string
}

type cellField struct {
	name  string
	since int
	read  func(d *decoder, c *cellState)
	write func(e *encoder, c *cellState)
}

var headerFields = []metaField{
	{
		name: "author", since: 1,
		read:  func(d *decoder, m *puz.Meta) { m.Author = d.string() },
		write: func(e *encoder, m *puz.Meta) { e.string(m.Author) },
	},
	{
		name: "source", since: 1,
		read:  func(d *decoder, m *puz.Meta) { m.Source = d.string() },
		write: func(e *encoder, m *puz.Meta) { e.string(m.Source) },
	},
	{
		name: "title", since: 1,
		read:  func(d *decoder, m *puz.Meta) { m.Title = d.string() },
		write: func(e *encoder, m *puz.Meta) { e.string(m.Title) },
	},
	{
		name: "date", since: 1,
		read: func(d *decoder, m *puz.Meta) {
			m.Date = time.Time{}
			if ms := d.int64(); ms != 0 {
				m.Date = time.UnixMilli(ms).UTC()
			}
		},
		write: func(e *encoder, m *puz.Meta) {
			var ms int64
			if !m.Date.IsZero() {
				ms = m.Date.UnixMilli()
			}
			e.int64(ms)
		},
	},
	{
		name: "percentComplete", since: 1,
		read:  func(d *decoder, m *puz.Meta) { m.PercentComplete = int(d.int32()) },
		write: func(e *encoder, m *puz.Meta) { e.int32(int32(m.PercentComplete)) },
	},
	{
		name: "percentFilled", since: 4,
		read:  func(d *decoder, m *puz.Meta) { m.PercentFilled = int(d.int32()) },
		write: func(e *encoder, m *puz.Meta) { e.int32(int32(m.PercentFilled)) },
	},
	{
		name: "updatable", since: 2,
		read:  func(d *decoder, m *puz.Meta) { m.Updatable = d.flag() },
		write: func(e *encoder, m *puz.Meta) { e.flag(m.Updatable) },
	},
	{
		name: "sourceUrl", since: 2,
		read:  func(d *decoder, m *puz.Meta) { m.SourceURL = d.string() },
		write: func(e *encoder, m *puz.Meta) { e.string(m.SourceURL) },
	},
	{
		name: "position.across", since: 3,
		read:  func(d *decoder, m *puz.Meta) { m.Position.Across = int(d.int32()) },
		write: func(e *encoder, m *puz.Meta) { e.int32(int32(m.Position.Across)) },
	},
	{
		name: "position.down", since: 3,
		read:  func(d *decoder, m *puz.Meta) { m.Position.Down = int(d.int32()) },
		write: func(e *encoder, m *puz.Meta) { e.int32(int32(m.Position.Down)) },
	},
	{
		name: "across", since: 3,
		read:  func(d *decoder, m *puz.Meta) { m.Across = d.flag() },
		write: func(e *encoder, m *puz.Meta) { e.flag(m.Across) },
	},
}

var cellFields = []cellField{
	{
		name: "cheated", since: 1,
		read:  func(d *decoder, c *cellState) { c.cheated = d.bool() },
		write: func(e *encoder, c *cellState) { e.bool(c.cheated) },
	},
	{
		name: "responder", since: 2,
		read:  func(d *decoder, c *cellState) { c.responder = d.string() },
		write: func(e *encoder, c *cellState) { e.string(c.responder) },
	},
}

var trailerFields = []metaField{
	{
		name: "time", since: 1,
		read:  func(d *decoder, m *puz.Meta) { m.Time = time.Duration(d.int64()) * time.Millisecond },
		write: func(e *encoder, m *puz.Meta) { e.int64(m.Time.Milliseconds()) },
	},
}

// schema is the ordered field layout of one revision.
type schema struct {
	version int
	header  []metaField
	cell    []cellField
	trailer []metaField
}

// schemaFor selects the fields present in a revision.
func schemaFor(version int) (schema, error) {
	if version < 1 || version > CurrentVersion {
		return schema{}, &VersionError{Version: version}
	}
	s := schema{version: version}
	for _, f := range headerFields {
		if f.since <= version {
			s.header = append(s.header, f)
		}
	}
	for _, f := range cellFields {
		if f.since <= version {
			s.cell = append(s.cell, f)
		}
	}
	for _, f := range trailerFields {
		if f.since <= version {
			s.trailer = append(s.trailer, f)
		}
	}
	return s, nil
}
