package samples_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"samplecatalog/src/domain"
	"samplecatalog/src/services/samples"
)

var _ = Describe("BuildStatusFilter", func() {
	now := int64(1577836800)

	statusPtr := func(s domain.Status) *domain.Status { return &s }

	It("should build an empty filter for a nil status", func() {
		filter := samples.BuildStatusFilter(nil, now)

		Expect(filter).To(Equal(domain.SampleFilter{}))
	})

	It("should build an empty filter for StatusAll", func() {
		filter := samples.BuildStatusFilter(statusPtr(domain.StatusAll), now)

		Expect(filter).To(Equal(domain.SampleFilter{}))
	})

	It("should bound Active between availability and expiration", func() {
		filter := samples.BuildStatusFilter(statusPtr(domain.StatusActive), now)

		Expect(filter.AvailableBefore).To(HaveValue(Equal(now)))
		Expect(filter.ExpirationAfter).To(HaveValue(Equal(now)))
		Expect(filter.AvailableAfter).To(BeNil())
		Expect(filter.ExpirationBefore).To(BeNil())
	})

	It("should bound Expired by expiration only", func() {
		filter := samples.BuildStatusFilter(statusPtr(domain.StatusExpired), now)

		Expect(filter.ExpirationBefore).To(HaveValue(Equal(now)))
		Expect(filter.AvailableBefore).To(BeNil())
		Expect(filter.AvailableAfter).To(BeNil())
		Expect(filter.ExpirationAfter).To(BeNil())
	})

	It("should bound Pending by future availability only", func() {
		filter := samples.BuildStatusFilter(statusPtr(domain.StatusPending), now)

		Expect(filter.AvailableAfter).To(HaveValue(Equal(now)))
		Expect(filter.AvailableBefore).To(BeNil())
		Expect(filter.ExpirationBefore).To(BeNil())
		Expect(filter.ExpirationAfter).To(BeNil())
	})

	It("should ignore expiration for Available", func() {
		filter := samples.BuildStatusFilter(statusPtr(domain.StatusAvailable), now)

		Expect(filter.AvailableBefore).To(HaveValue(Equal(now)))
		Expect(filter.ExpirationAfter).To(BeNil())
		Expect(filter.ExpirationBefore).To(BeNil())
	})
})
