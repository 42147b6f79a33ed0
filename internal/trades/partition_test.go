package trades

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/stretchr/testify/suite"
)

type PartitionTestSuite struct {
	suite.Suite
}

func TestPartitionSuite(t *testing.T) {
	suite.Run(t, new(PartitionTestSuite))
}

func trade(id string, status types.TradeStatus) types.TradeRecord {
	return types.TradeRecord{ID: id, Status: status}
}

func ids(records []types.TradeRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}

	return out
}

func (suite *PartitionTestSuite) TestPendingAndSettled() {
	pending, other := Partition([]types.TradeRecord{
		trade("1", types.TradeStatusPending),
		trade("2", types.TradeStatusSettled),
		trade("3", types.TradeStatusPending),
	})

	suite.Equal([]string{"1", "3"}, ids(pending))
	suite.Equal([]string{"2"}, ids(other))
}

func (suite *PartitionTestSuite) TestEmptyInput() {
	pending, other := Partition(nil)

	suite.NotNil(pending)
	suite.NotNil(other)
	suite.Empty(pending)
	suite.Empty(other)

	for _, seq := range [][]types.TradeRecord{pending, other} {
		for i := range 3 {
			page, err := Page(seq, i, 5)
			suite.NoError(err)
			suite.Empty(page)
		}
	}
}

func (suite *PartitionTestSuite) TestMissingStatusGoesToOther() {
	pending, other := Partition([]types.TradeRecord{
		trade("a", ""),
		trade("b", types.TradeStatus("garbage")),
		trade("c", types.TradeStatusPending),
		trade("d", types.TradeStatusRejected),
		trade("e", types.TradeStatusExpired),
	})

	suite.Equal([]string{"c"}, ids(pending))
	suite.Equal([]string{"a", "b", "d", "e"}, ids(other))
}

func (suite *PartitionTestSuite) TestTotalityAndDisjointness() {
	statuses := []types.TradeStatus{
		types.TradeStatusPending,
		types.TradeStatusSettled,
		types.TradeStatusRejected,
		types.TradeStatusExpired,
		"",
	}
	rng := rand.New(rand.NewSource(42))

	for run := range 50 {
		n := rng.Intn(40)
		input := make([]types.TradeRecord, 0, n)

		for i := range n {
			input = append(input, trade(fmt.Sprintf("%d-%d", run, i), statuses[rng.Intn(len(statuses))]))
		}

		pending, other := Partition(input)
		suite.Len(append(append([]types.TradeRecord{}, pending...), other...), len(input))

		seen := make(map[string]int, n)
		for _, r := range pending {
			suite.Equal(types.TradeStatusPending, r.Status)
			seen[r.ID]++
		}

		for _, r := range other {
			suite.NotEqual(types.TradeStatusPending, r.Status)
			seen[r.ID]++
		}

		for _, r := range input {
			suite.Equal(1, seen[r.ID], "trade %s must appear exactly once", r.ID)
		}

		// each bucket is an order-preserving subsequence of the input
		suite.True(isSubsequence(ids(pending), ids(input)))
		suite.True(isSubsequence(ids(other), ids(input)))
	}
}

func (suite *PartitionTestSuite) TestPartitionDoesNotMutateInput() {
	input := []types.TradeRecord{
		trade("1", types.TradeStatusSettled),
		trade("2", types.TradeStatusPending),
	}
	_, _ = Partition(input)

	suite.Equal([]string{"1", "2"}, ids(input))
}

func (suite *PartitionTestSuite) TestFilter() {
	input := []types.TradeRecord{
		{ID: "1", Counterparty: "0xAbC123", TokenToSell: "0xdead", Status: types.TradeStatusPending},
		{ID: "2", Counterparty: "0x999", TokenToBuy: "0xBEEF", Status: types.TradeStatusSettled},
		{ID: "3", Counterparty: "0x777", Status: types.TradeStatusExpired},
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "empty query keeps all", query: "  ", expected: []string{"1", "2", "3"}},
		{name: "counterparty ignoring case", query: "abc", expected: []string{"1"}},
		{name: "token", query: "beef", expected: []string{"2"}},
		{name: "status", query: "expired", expected: []string{"3"}},
		{name: "no match", query: "zzz", expected: []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.expected, ids(Filter(input, tt.query)))
		})
	}
}

func (suite *PartitionTestSuite) TestGroup() {
	input := []types.TradeRecord{
		{ID: "1", Counterparty: "0xaaa", Status: types.TradeStatusPending},
		{ID: "2", Counterparty: "0xaaa", Status: types.TradeStatusSettled},
		{ID: "3", Counterparty: "0xbbb", Status: types.TradeStatusPending},
	}

	groups := Group(input, "0xaaa")
	suite.Equal([]string{"1"}, ids(groups.Pending))
	suite.Equal([]string{"2"}, ids(groups.Other))
	suite.Equal(2, groups.Total())
}

func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, s := range seq {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}

	return i == len(sub)
}
