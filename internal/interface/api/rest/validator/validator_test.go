package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imageresizer/internal/domain/image"
	"imageresizer/internal/interface/api/rest/dto/auth"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name     string
		req      auth.RegisterRequest
		wantKeys []string
	}{
		{name: "valid", req: auth.RegisterRequest{Email: "a@example.com", Password: "secret", Name: "Ann"}},
		{name: "all missing", req: auth.RegisterRequest{}, wantKeys: []string{"email", "password", "name"}},
		{name: "bad email", req: auth.RegisterRequest{Email: "nope", Password: "secret", Name: "Ann"}, wantKeys: []string{"email"}},
		{name: "display name form rejected", req: auth.RegisterRequest{Email: "Ann <a@example.com>", Password: "secret", Name: "Ann"}, wantKeys: []string{"email"}},
		{name: "short password", req: auth.RegisterRequest{Email: "a@example.com", Password: "12345", Name: "Ann"}, wantKeys: []string{"password"}},
		{name: "long password", req: auth.RegisterRequest{Email: "a@example.com", Password: string(make([]byte, 73)), Name: "Ann"}, wantKeys: []string{"password"}},
		{name: "blank name", req: auth.RegisterRequest{Email: "a@example.com", Password: "secret", Name: "   "}, wantKeys: []string{"name"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.req)
			if len(tt.wantKeys) == 0 {
				assert.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantKeys))
			for _, k := range tt.wantKeys {
				assert.Contains(t, errs, k)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.Nil(t, ValidateLogin(auth.LoginRequest{Email: "a@example.com", Password: "x"}))

	errs := ValidateLogin(auth.LoginRequest{Email: "bad", Password: " "})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestParseResizeOptions(t *testing.T) {
	tests := []struct {
		name                   string
		width, height, quality string
		want                   image.ResizeOptions
		wantErr                error
	}{
		{name: "all empty", want: image.ResizeOptions{}},
		{name: "width only", width: "100", want: image.ResizeOptions{Width: 100}},
		{name: "both with quality", width: "300", height: " 200 ", quality: "60", want: image.ResizeOptions{Width: 300, Height: 200, Quality: 60}},
		{name: "unparseable quality falls back", width: "10", quality: "high", want: image.ResizeOptions{Width: 10}},
		{name: "out of range quality passes through", quality: "150", want: image.ResizeOptions{Quality: 150}},
		{name: "non-numeric width", width: "abc", wantErr: image.ErrInvalidDimension},
		{name: "zero height", height: "0", wantErr: image.ErrInvalidDimension},
		{name: "negative width", width: "-5", wantErr: image.ErrInvalidDimension},
		{name: "fractional width", width: "10.5", wantErr: image.ErrInvalidDimension},
		{name: "largest side accepted", width: "10000", height: "10000", want: image.ResizeOptions{Width: 10000, Height: 10000}},
		{name: "width above max", width: "10001", wantErr: image.ErrInvalidDimension},
		{name: "height above max", height: "1000000", wantErr: image.ErrInvalidDimension},
		{name: "width overflows int", width: "99999999999999999999", wantErr: image.ErrInvalidDimension},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResizeOptions(tt.width, tt.height, tt.quality)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
