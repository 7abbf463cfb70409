package repositories_test

import (
	"context"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"samplecatalog/src/domain"
	"samplecatalog/src/repositories"
	"samplecatalog/src/test_artefacts/comparer"
	"samplecatalog/src/test_artefacts/stubs"
)

var _ = Describe("MemorySampleRepository", func() {
	var (
		ctx  context.Context
		repo *repositories.MemorySampleRepository
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = repositories.NewMemorySampleRepository()
	})

	Context("InsertOne", func() {
		It("should store a new document", func() {
			sample := stubs.NewSampleStub().WithID("samples:a").Get()

			Expect(repo.InsertOne(ctx, sample)).To(Succeed())

			found, err := repo.FindOneByID(ctx, "samples:a")
			Expect(err).NotTo(HaveOccurred())
			Expect(cmp.Diff(sample, *found, comparer.TimeWithinTolerance(100))).To(BeEmpty())
		})

		It("should refuse a duplicate id", func() {
			sample := stubs.NewSampleStub().WithID("samples:a").Get()
			Expect(repo.InsertOne(ctx, sample)).To(Succeed())

			err := repo.InsertOne(ctx, sample)

			Expect(err).To(MatchError(domain.ErrDuplicateKey))
		})
	})

	Context("ReplaceOne", func() {
		It("should overwrite the whole stored document", func() {
			Expect(repo.InsertOne(ctx, stubs.NewSampleStub().WithID("samples:a").WithName("before").Get())).To(Succeed())

			replacement := stubs.NewSampleStub().WithID("samples:a").WithName("after").Get()
			Expect(repo.ReplaceOne(ctx, replacement)).To(Succeed())

			found, err := repo.FindOneByID(ctx, "samples:a")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("after"))
		})

		It("should fail with not-found for an absent id", func() {
			err := repo.ReplaceOne(ctx, stubs.NewSampleStub().WithID("samples:ghost").Get())

			Expect(err).To(MatchError(domain.ErrNotFound))
		})
	})

	Context("DeleteOneByID", func() {
		It("should report whether the document existed", func() {
			Expect(repo.InsertOne(ctx, stubs.NewSampleStub().WithID("samples:a").Get())).To(Succeed())

			deleted, err := repo.DeleteOneByID(ctx, "samples:a")
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			again, err := repo.DeleteOneByID(ctx, "samples:a")
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(BeFalse())
		})
	})

	Context("FindAll", func() {
		It("should return only documents matching the filter", func() {
			Expect(repo.InsertOne(ctx, stubs.NewSampleStub().WithID("samples:a").WithName("iron").Get())).To(Succeed())
			Expect(repo.InsertOne(ctx, stubs.NewSampleStub().WithID("samples:b").WithName("copper").Get())).To(Succeed())

			found, err := repo.FindAll(ctx, domain.SampleFilter{Names: []string{"iron"}})

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(1))
			Expect(found[0].ID).To(Equal("samples:a"))
		})
	})

	Context("aliasing", func() {
		It("should never let callers mutate stored state through returned documents", func() {
			original := stubs.NewSampleStub().
				WithID("samples:a").
				WithName("pristine").
				WithValues(stubs.NewEmbeddedStub().WithID("values:v").WithValue(1).Get()).
				Get()
			Expect(repo.InsertOne(ctx, original)).To(Succeed())

			// ACT: scribble over everything the first read returned
			leaked, err := repo.FindOneByID(ctx, "samples:a")
			Expect(err).NotTo(HaveOccurred())
			leaked.Name = "tampered"
			*leaked.Values[0].Value = 99
			leaked.Values[0].ID = "values:swapped"

			// ASSERT: the store is unaffected
			stored, err := repo.FindOneByID(ctx, "samples:a")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("pristine"))
			Expect(stored.Values[0].ID).To(Equal("values:v"))
			Expect(stored.Values[0].Value).To(HaveValue(Equal(1.0)))
		})

		It("should detach stored state from the caller's insert argument", func() {
			sample := stubs.NewSampleStub().WithID("samples:a").WithName("pristine").Get()
			Expect(repo.InsertOne(ctx, sample)).To(Succeed())

			sample.Name = "tampered"

			stored, err := repo.FindOneByID(ctx, "samples:a")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("pristine"))
		})
	})
})
