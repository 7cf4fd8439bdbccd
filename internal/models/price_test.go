package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want Price
		err  error
	}{
		{"5.25", 525, nil},
		{"5", 500, nil},
		{"5.5", 550, nil},
		{"5.", 500, nil},
		{".5", 50, nil},
		{"999.99", 99999, nil},
		{"-1.50", -150, nil},
		{"20.250", 2025, nil},
		{"1000", 0, ErrPriceMaxDigits},
		{"1.234", 0, ErrPriceDecimals},
		{"", 0, ErrInvalidPrice},
		{".", 0, ErrInvalidPrice},
		{"abc", 0, ErrInvalidPrice},
		{"1e3", 0, ErrInvalidPrice},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "5.25", Price(525).String())
	assert.Equal(t, "0.05", Price(5).String())
	assert.Equal(t, "-1.50", Price(-150).String())
}

func TestPriceJSON(t *testing.T) {
	var body struct {
		Price Price `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price": "20.25"}`), &body))
	assert.Equal(t, Price(2025), body.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price": 5.5}`), &body))
	assert.Equal(t, Price(550), body.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price": "cheap"}`), &body))

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": "5.50"}`, string(out))
}

func TestPriceScan(t *testing.T) {
	var p Price
	require.NoError(t, p.Scan([]byte("5.25")))
	assert.Equal(t, Price(525), p)

	require.NoError(t, p.Scan(5.5))
	assert.Equal(t, Price(550), p)

	require.NoError(t, p.Scan(int64(7)))
	assert.Equal(t, Price(700), p)

	assert.Error(t, p.Scan(true))
}
