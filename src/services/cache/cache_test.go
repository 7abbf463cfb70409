package cache_test

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"samplecatalog/src/services/cache"
)

var _ = Describe("Cache", func() {
	var (
		logger   *slog.Logger
		now      time.Time
		clock    func() time.Time
		computes int
	)

	logger = slog.New(slog.DiscardHandler)

	newCache := func(capacity int, ttl time.Duration) *cache.Cache[string] {
		return cache.New("test", capacity, ttl, logger, cache.WithClock[string](clock))
	}

	counting := func(value string) func() (string, error) {
		return func() (string, error) {
			computes++
			return value, nil
		}
	}

	BeforeEach(func() {
		now = time.Unix(1577836800, 0)
		clock = func() time.Time { return now }
		computes = 0
	})

	Context("get or compute", func() {
		When("the key is absent", func() {
			It("should invoke compute and return its result", func() {
				// ARRANGE
				c := newCache(10, time.Minute)

				// ACT
				value, err := c.GetOrCompute("k", counting("first"))

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal("first"))
				Expect(computes).To(Equal(1))
			})
		})

		When("a live entry exists", func() {
			It("should return the cached value without recomputing", func() {
				// ARRANGE
				c := newCache(10, time.Minute)
				_, err := c.GetOrCompute("k", counting("first"))
				Expect(err).NotTo(HaveOccurred())

				// ACT
				value, err := c.GetOrCompute("k", counting("second"))

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal("first"))
				Expect(computes).To(Equal(1))
			})
		})

		When("the entry's TTL has elapsed", func() {
			It("should recompute and serve the fresh value", func() {
				// ARRANGE
				c := newCache(10, time.Minute)
				_, err := c.GetOrCompute("k", counting("first"))
				Expect(err).NotTo(HaveOccurred())

				// ACT
				now = now.Add(time.Minute)
				value, err := c.GetOrCompute("k", counting("second"))

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal("second"))
				Expect(computes).To(Equal(2))
			})
		})

		When("compute fails", func() {
			It("should return the error and cache nothing", func() {
				// ARRANGE
				c := newCache(10, time.Minute)
				boom := errors.New("boom")

				// ACT
				_, err := c.GetOrCompute("k", func() (string, error) { return "", boom })
				value, err2 := c.GetOrCompute("k", counting("after"))

				// ASSERT
				Expect(err).To(MatchError(boom))
				Expect(err2).NotTo(HaveOccurred())
				Expect(value).To(Equal("after"))
				Expect(c.Len()).To(Equal(1))
			})
		})
	})

	Context("capacity bound", func() {
		It("should evict the oldest entries first, regardless of remaining TTL", func() {
			// ARRANGE
			c := newCache(2, time.Hour)
			_, _ = c.GetOrCompute("a", counting("a"))
			now = now.Add(time.Second)
			_, _ = c.GetOrCompute("b", counting("b"))
			now = now.Add(time.Second)

			// ACT: inserting "c" pushes the cache over capacity
			_, _ = c.GetOrCompute("c", counting("c"))

			// ASSERT: "b" and "c" survived, the oldest entry "a" did not
			_, _ = c.GetOrCompute("b", counting("b2"))
			_, _ = c.GetOrCompute("c", counting("c2"))
			Expect(computes).To(Equal(3))
			_, _ = c.GetOrCompute("a", counting("a2"))
			Expect(computes).To(Equal(4))
		})

		It("should treat a re-stored key as fresh after its entry expired", func() {
			// ARRANGE
			c := newCache(2, time.Minute)
			_, _ = c.GetOrCompute("a", counting("a"))
			now = now.Add(time.Second)
			_, _ = c.GetOrCompute("b", counting("b"))

			// ACT: "a" expires, gets re-stored, then "c" triggers eviction
			now = now.Add(time.Minute)
			_, _ = c.GetOrCompute("a", counting("a2"))
			now = now.Add(time.Second)
			_, _ = c.GetOrCompute("c", counting("c"))
			Expect(computes).To(Equal(4))

			// ASSERT: eviction hit the oldest entry "b", not the re-stored "a"
			_, _ = c.GetOrCompute("a", counting("a3"))
			_, _ = c.GetOrCompute("c", counting("c2"))
			Expect(computes).To(Equal(4))
			_, _ = c.GetOrCompute("b", counting("b2"))
			Expect(computes).To(Equal(5))
		})
	})

	Context("disabled configurations", func() {
		When("capacity is zero", func() {
			It("should compute on every call", func() {
				c := newCache(0, time.Minute)
				_, _ = c.GetOrCompute("k", counting("v"))
				_, _ = c.GetOrCompute("k", counting("v"))
				Expect(computes).To(Equal(2))
				Expect(c.Len()).To(Equal(0))
			})
		})

		When("TTL is zero", func() {
			It("should compute on every call", func() {
				c := newCache(10, 0)
				_, _ = c.GetOrCompute("k", counting("v"))
				_, _ = c.GetOrCompute("k", counting("v"))
				Expect(computes).To(Equal(2))
				Expect(c.Len()).To(Equal(0))
			})
		})
	})

	Context("concurrent access", func() {
		It("should not corrupt the map under parallel gets", func() {
			// ARRANGE
			c := cache.New[int]("concurrent", 100, time.Minute, logger)
			var wg sync.WaitGroup

			// ACT
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(n int) {
					defer GinkgoRecover()
					defer wg.Done()
					key := cache.Key("ns", string(rune('a'+n%5)))
					_, err := c.GetOrCompute(key, func() (int, error) { return n, nil })
					Expect(err).NotTo(HaveOccurred())
				}(i)
			}
			wg.Wait()

			// ASSERT
			Expect(c.Len()).To(Equal(5))
		})
	})

	Context("key serialization", func() {
		It("should give equal keys for equal argument tuples", func() {
			Expect(cache.Key("ns", "a", "nil", "2")).To(Equal(cache.Key("ns", "a", "nil", "2")))
		})

		It("should give distinct keys for distinct tuples and namespaces", func() {
			Expect(cache.Key("ns", "a")).NotTo(Equal(cache.Key("ns", "b")))
			Expect(cache.Key("ns1", "a")).NotTo(Equal(cache.Key("ns2", "a")))
		})
	})
})
