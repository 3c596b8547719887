package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/revcheck/pkg/ledger"
)

func home(doc, title, desc, call string) ledger.HomeRecord {
	return ledger.HomeRecord{
		DocumentNumber:      ledger.Text(doc),
		Title:               ledger.Text(title),
		RevisionDescription: ledger.Text(desc),
		CallNumber:          ledger.Text(call),
	}
}

func client(doc, hint string) ledger.ClientRecord {
	return ledger.ClientRecord{DocNumber: ledger.Text(doc), FormattedHint: ledger.Text(hint)}
}

func calls(records []ledger.HomeRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.CallNumber.String())
	}
	return out
}

func TestTierTypeString(t *testing.T) {
	assert.Equal(t, "document_number", DocumentNumber.String())
	assert.Equal(t, "title_keywords", TitleKeywords.String())
	assert.Equal(t, "revision_description", RevisionDescription.String())
	assert.Equal(t, "unknown", TierType(42).String())
}

func TestDefaultOrder(t *testing.T) {
	tiers := Default()
	require.Len(t, tiers, 3)
	assert.Equal(t, DocumentNumber, tiers[0].Type())
	assert.Equal(t, TitleKeywords, tiers[1].Type())
	assert.Equal(t, RevisionDescription, tiers[2].Type())

	tier, ok := ForType(TitleKeywords)
	require.True(t, ok)
	assert.Equal(t, TitleKeywords, tier.Type())
	_, ok = ForType(TierType(9))
	assert.False(t, ok)
}

func TestDocumentNumberTier(t *testing.T) {
	catalog := ledger.CatalogOf(
		home("D1", "", "", "C1"),
		home(" D1 ", "", "", "C2"),
		home("d1", "", "", "C3"),
		home("D10", "", "", "C4"),
	)
	tier, _ := ForType(DocumentNumber)

	assert.Equal(t, []string{"C1", "C2"}, calls(tier.Match(client(" D1", ""), catalog)))
	assert.Empty(t, tier.Match(client("", ""), catalog))
}

func TestTitleKeywordsTier(t *testing.T) {
	catalog := ledger.CatalogOf(
		home("", "Manual ABC 123 rev", "", "C1"),
		home("", "123 manual for abc", "", "C2"),
		home("", "abc 123", "", "C3"),
		home("", "Part 4567 catalogue", "", "C4"),
		home("", "", "", "C5"),
	)
	tier, _ := ForType(TitleKeywords)

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"verbatim substring", "ABC 123", []string{"C1", "C2", "C3"}},
		{"numeric substring only", "4567", []string{"C4"}},
		{"single letter token is case sensitive", "Abc", []string{}},
		{"single token verbatim", "abc", []string{"C2", "C3"}},
		{"tokens out of order", "123-ABC", []string{"C1", "C2", "C3"}},
		{"missing token", "ABC 999", []string{}},
		{"blank", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calls(tier.Match(client(tt.doc, ""), catalog)))
		})
	}
}

func TestRevisionDescriptionTier(t *testing.T) {
	catalog := ledger.CatalogOf(
		home("", "", "Incorporates d-100 amendment", "C1"),
		home("", "", "unrelated", "C2"),
	)
	tier, _ := ForType(RevisionDescription)

	assert.Equal(t, []string{"C1"}, calls(tier.Match(client("D-100", ""), catalog)))
	assert.True(t, tier.Applies(client("D-100", "")))
	assert.False(t, tier.Applies(client("D-100", "TR")), "hinted rows skip the description tier")
	assert.False(t, tier.Applies(client("", "")))
}

func TestParseTierType(t *testing.T) {
	got, err := ParseTierType(" Title_Keywords ")
	require.NoError(t, err)
	assert.Equal(t, TitleKeywords, got)

	_, err = ParseTierType("fuzzy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tier")
}
