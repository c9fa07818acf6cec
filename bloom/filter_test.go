package bloom_test

import (
	"fmt"
	"testing"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/elliotttmiller/seatsync/bloom"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func listingInSection(section string) *seatsync.Listing {
	return &seatsync.Listing{
		Source:   seatsync.SourceStubHub,
		Price:    &seatsync.Price{Amount: decimal.RequireFromString("120.00"), Currency: "USD"},
		Section:  section,
		Row:      "G",
		Quantity: 2,
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("remembered listings always test seen", func(t *testing.T) {
		t.Parallel()

		ix := bloom.NewIndex(1000, 0.01)
		for i := 0; i < 100; i++ {
			ix.Remember(listingInSection(fmt.Sprintf("s-%d", i)))
		}
		for i := 0; i < 100; i++ {
			assert.True(t, ix.Seen(listingInSection(fmt.Sprintf("s-%d", i))))
		}
	})

	t.Run("unseen listings mostly test unseen", func(t *testing.T) {
		t.Parallel()

		ix := bloom.NewIndex(1000, 0.01)
		for i := 0; i < 100; i++ {
			ix.Remember(listingInSection(fmt.Sprintf("s-%d", i)))
		}

		var falsePositives int
		for i := 0; i < 1000; i++ {
			if ix.Seen(listingInSection(fmt.Sprintf("other-%d", i))) {
				falsePositives++
			}
		}
		// 1% nominal rate with generous headroom.
		assert.Less(t, falsePositives, 100)
	})

	t.Run("fingerprint identity, not object identity", func(t *testing.T) {
		t.Parallel()

		ix := bloom.NewIndex(1000, 0.01)
		ix.Remember(listingInSection("114"))

		// A distinct value with the same identifying fields is the same
		// offer.
		assert.True(t, ix.Seen(listingInSection("114")))
	})

	t.Run("approximate count tracks additions", func(t *testing.T) {
		t.Parallel()

		ix := bloom.NewIndex(1000, 0.01)
		assert.Zero(t, ix.ApproxCount())

		for i := 0; i < 50; i++ {
			ix.Remember(listingInSection(fmt.Sprintf("s-%d", i)))
		}
		assert.InDelta(t, 50, float64(ix.ApproxCount()), 10)
	})
}
