package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmatch/bookmatch/internal/config"
	"github.com/bookmatch/bookmatch/internal/search"
)

func TestResolveSearchOptions(t *testing.T) {
	defaults := config.SearchSettings{Threshold: 0.67, Limit: 10}
	zero := 0
	negative := -1
	low := 0.1
	one := 1.0

	tests := []struct {
		name    string
		opts    SearchOptions
		want    search.Options
		wantErr bool
	}{
		{name: "defaults", opts: SearchOptions{}, want: search.Options{Limit: 10, Threshold: 0.67}},
		{name: "unlimited", opts: SearchOptions{Limit: &zero}, want: search.Options{Limit: 0, Threshold: 0.67}},
		{name: "threshold override", opts: SearchOptions{Threshold: &low}, want: search.Options{Limit: 10, Threshold: 0.1}},
		{name: "negative limit", opts: SearchOptions{Limit: &negative}, wantErr: true},
		{name: "threshold of one", opts: SearchOptions{Threshold: &one}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSearchOptions(tt.opts, defaults)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
