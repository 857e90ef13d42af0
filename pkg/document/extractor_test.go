package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		want     string
	}{
		{
			name:     "plain text is cleaned",
			fileName: "faq.txt",
			content:  "Shipping\t\t takes  2 days.\r\n\n\n\nReturns: 30 days.\x00",
			want:     "Shipping takes 2 days.\n\nReturns: 30 days.",
		},
		{
			name:     "markdown passes through",
			fileName: "FAQ.MD",
			content:  "# Refunds\nWithin 30 days.",
			want:     "# Refunds\nWithin 30 days.",
		},
		{
			name:     "csv rows become labelled pairs",
			fileName: "faq.csv",
			content:  "question,answer\nHow long is shipping?,2 days\nDo you ship abroad?,\n",
			want:     "question: How long is shipping?; answer: 2 days\nquestion: Do you ship abroad?",
		},
		{
			name:     "json is flattened with sorted keys",
			fileName: "faq.json",
			content:  `{"shipping":{"days":2,"regions":["EU","US"]},"refund":"30 days","note":null}`,
			want:     "refund: 30 days\nshipping.days: 2\nshipping.regions[0]: EU\nshipping.regions[1]: US",
		},
		{
			name:     "html keeps structure and drops scripts",
			fileName: "faq.html",
			content: `<html><head><script>var x = 1;</script></head><body>
<h2>Returns</h2><p>Items can be returned within 30 days.</p>
<ul><li>Keep the receipt</li></ul>
<table><tr><th>Plan</th><th>Price</th></tr><tr><td>Basic</td><td>$5</td></tr></table>
</body></html>`,
			want: "# Returns\nItems can be returned within 30 days.\n- Keep the receipt\nPlan | Price\nBasic | $5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.fileName, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRejectsUnsupportedInput(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  []byte
		wantErr  error
	}{
		{name: "pdf", fileName: "manual.pdf", content: []byte("%PDF-1.4"), wantErr: ErrUnsupportedFormat},
		{name: "no extension", fileName: "README", content: []byte("hello"), wantErr: ErrUnsupportedFormat},
		{name: "binary content", fileName: "faq.txt", content: []byte{0xff, 0xfe, 0xfd}, wantErr: ErrUnsupportedFormat},
		{name: "broken json", fileName: "faq.json", content: []byte(`{"a":`), wantErr: ErrUnsupportedFormat},
		{name: "whitespace only", fileName: "faq.txt", content: []byte(" \n\t "), wantErr: ErrEmptyDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.fileName, tt.content)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
