package stubs

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
)

type SampleStub struct {
	sample entities.Sample
}

func NewSampleStub() SampleStub {
	now := time.Now().UTC().Truncate(time.Second)
	description := gofakeit.Sentence(6)

	sample := entities.Sample{
		ID:          domain.NewSampleID(),
		Node:        entities.Stamp(now, nil),
		Name:        gofakeit.ProductName(),
		Description: &description,
	}

	return SampleStub{sample: sample}
}

func (ss SampleStub) WithID(id string) SampleStub {
	ss.sample.ID = id
	return ss
}

func (ss SampleStub) WithName(name string) SampleStub {
	ss.sample.Name = name
	return ss
}

func (ss SampleStub) WithDescription(description string) SampleStub {
	ss.sample.Description = &description
	return ss
}

func (ss SampleStub) WithDateCreated(t time.Time) SampleStub {
	ss.sample.Node.DateCreated = t
	ss.sample.Node.DateModified = t
	return ss
}

func (ss SampleStub) WithAvailableDate(ts int64) SampleStub {
	ss.sample.AvailableDate = &ts
	return ss
}

func (ss SampleStub) WithExpirationDate(ts int64) SampleStub {
	ss.sample.ExpirationDate = &ts
	return ss
}

func (ss SampleStub) WithValues(values ...entities.Embedded) SampleStub {
	ss.sample.Values = values
	return ss
}

func (ss SampleStub) Get() entities.Sample {
	return ss.sample
}

type EmbeddedStub struct {
	embedded entities.Embedded
}

func NewEmbeddedStub() EmbeddedStub {
	now := time.Now().UTC().Truncate(time.Second)
	value := gofakeit.Float64Range(0.1, 100)

	embedded := entities.Embedded{
		ID:           domain.NewEmbeddedID(),
		Node:         entities.Stamp(now, nil),
		EmbeddedType: entities.EmbeddedTypeOne,
		Value:        &value,
	}

	return EmbeddedStub{embedded: embedded}
}

func (es EmbeddedStub) WithID(id string) EmbeddedStub {
	es.embedded.ID = id
	return es
}

func (es EmbeddedStub) WithType(t entities.EmbeddedType) EmbeddedStub {
	es.embedded.EmbeddedType = t
	return es
}

func (es EmbeddedStub) WithValue(value float64) EmbeddedStub {
	es.embedded.Value = &value
	return es
}

func (es EmbeddedStub) WithoutValue() EmbeddedStub {
	es.embedded.Value = nil
	return es
}

func (es EmbeddedStub) Get() entities.Embedded {
	return es.embedded
}
