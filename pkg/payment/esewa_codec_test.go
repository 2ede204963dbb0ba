package payment

import (
	"PixGen-Backend/domain"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProductCode = "EPAYTEST"
	testSecretKey   = "8gBm/:&EnhH.1/q"
)

// buildCallback assembles a gateway callback blob: the payload fields
// are signed in the order declared by signed_field_names, then the JSON
// is base64- and URL-encoded the way the gateway delivers it.
func buildCallback(t *testing.T, codec SignatureCodec, payload map[string]string, signedNames string) string {
	t.Helper()

	payload["signed_field_names"] = signedNames
	fields := make([]Field, 0, len(payload))
	for _, key := range splitNames(signedNames) {
		fields = append(fields, Field{Key: key, Value: payload[key]})
	}
	payload["signature"] = codec.SignFields(fields)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func splitNames(names string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(names); i++ {
		if i == len(names) || names[i] == ',' {
			out = append(out, names[start:i])
			start = i + 1
		}
	}
	return out
}

func validCallbackPayload() map[string]string {
	return map[string]string{
		"transaction_code":   "000ABC1",
		"status":             "COMPLETE",
		"total_amount":       "1000",
		"transaction_uuid":   "7-1690000000",
		"product_code":       testProductCode,
		"signed_field_names": "transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names",
	}
}

func TestVerifyCallbackRoundTrip(t *testing.T) {
	codec := NewEsewaCodec(testProductCode, testSecretKey)
	encoded := buildCallback(t, codec, validCallbackPayload(),
		"transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names")

	data, err := codec.VerifyCallback(encoded)
	require.NoError(t, err)
	assert.Equal(t, "7-1690000000", data["transaction_uuid"])
	assert.Equal(t, "000ABC1", data["transaction_code"])
	assert.Equal(t, "1000", data["total_amount"])
}

func TestVerifyCallbackURLEncodedTransport(t *testing.T) {
	// The gateway delivers the blob URL-encoded in a query parameter.
	codec := NewEsewaCodec(testProductCode, testSecretKey)
	encoded := buildCallback(t, codec, validCallbackPayload(),
		"transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names")

	data, err := codec.VerifyCallback(url.PathEscape(encoded))
	require.NoError(t, err)
	assert.Equal(t, "7-1690000000", data["transaction_uuid"])
}

func TestVerifyCallbackDeclaredOrderIsHonoured(t *testing.T) {
	// The callback declares its own field order; a different order than
	// the outbound fixed one must still verify.
	codec := NewEsewaCodec(testProductCode, testSecretKey)
	encoded := buildCallback(t, codec, validCallbackPayload(),
		"product_code,transaction_uuid,total_amount,status,transaction_code,signed_field_names")

	_, err := codec.VerifyCallback(encoded)
	require.NoError(t, err)
}

func TestVerifyCallbackTamperedFields(t *testing.T) {
	codec := NewEsewaCodec(testProductCode, testSecretKey)
	signedNames := "transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names"

	tampered := []struct {
		name   string
		mutate func(payload map[string]string)
	}{
		{"amount changed", func(p map[string]string) { p["total_amount"] = "1" }},
		{"transaction uuid changed", func(p map[string]string) { p["transaction_uuid"] = "7-1690000001" }},
		{"status changed", func(p map[string]string) { p["status"] = "PENDING" }},
		{"product code changed", func(p map[string]string) { p["product_code"] = "XPAYTEST" }},
		{"transaction code changed", func(p map[string]string) { p["transaction_code"] = "000ABC2" }},
		{"field order reshuffled", func(p map[string]string) {
			p["signed_field_names"] = "status,transaction_code,total_amount,transaction_uuid,product_code,signed_field_names"
		}},
		{"signature replaced", func(p map[string]string) {
			p["signature"] = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
		}},
	}

	for _, tt := range tampered {
		t.Run(tt.name, func(t *testing.T) {
			payload := validCallbackPayload()
			encoded := buildCallback(t, codec, payload, signedNames)

			// decode, mutate after signing, re-encode
			raw, err := base64.StdEncoding.DecodeString(encoded)
			require.NoError(t, err)
			var decoded map[string]string
			require.NoError(t, json.Unmarshal(raw, &decoded))
			tt.mutate(decoded)
			mutated, err := json.Marshal(decoded)
			require.NoError(t, err)

			_, err = codec.VerifyCallback(base64.StdEncoding.EncodeToString(mutated))
			assert.ErrorIs(t, err, domain.ErrInvalidSignature)
		})
	}
}

func TestVerifyCallbackMalformedPayload(t *testing.T) {
	codec := NewEsewaCodec(testProductCode, testSecretKey)

	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not json", base64.StdEncoding.EncodeToString([]byte("not json"))},
		{"missing signed_field_names", base64.StdEncoding.EncodeToString([]byte(`{"signature":"abc"}`))},
		{"missing signature", base64.StdEncoding.EncodeToString([]byte(`{"signed_field_names":"total_amount","total_amount":"1000"}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.VerifyCallback(tt.encoded)
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestVerifyCallbackWrongSecret(t *testing.T) {
	signer := NewEsewaCodec(testProductCode, "some-other-secret")
	verifier := NewEsewaCodec(testProductCode, testSecretKey)

	encoded := buildCallback(t, signer, validCallbackPayload(),
		"transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names")

	_, err := verifier.VerifyCallback(encoded)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestSignCheckoutMatchesFieldOrder(t *testing.T) {
	codec := NewEsewaCodec(testProductCode, testSecretKey)

	manual := codec.SignFields([]Field{
		{Key: "total_amount", Value: "1000"},
		{Key: "transaction_uuid", Value: "7-1690000000"},
		{Key: "product_code", Value: testProductCode},
	})
	assert.Equal(t, manual, codec.SignCheckout("1000", "7-1690000000"))

	// reordering the same fields must change the signature
	reordered := codec.SignFields([]Field{
		{Key: "transaction_uuid", Value: "7-1690000000"},
		{Key: "total_amount", Value: "1000"},
		{Key: "product_code", Value: testProductCode},
	})
	assert.NotEqual(t, manual, reordered)
}

func TestVerifyCallbackNumericValuesKeepLiteralForm(t *testing.T) {
	// A gateway sending numbers as JSON numbers must still verify: the
	// rebuilt message has to use the literal as transmitted.
	codec := NewEsewaCodec(testProductCode, testSecretKey)

	signature := codec.SignFields([]Field{
		{Key: "total_amount", Value: "1000.5"},
		{Key: "signed_field_names", Value: "total_amount,signed_field_names"},
	})
	raw, err := json.Marshal(map[string]any{
		"total_amount":       1000.5,
		"signed_field_names": "total_amount,signed_field_names",
		"signature":          signature,
	})
	require.NoError(t, err)

	data, verr := codec.VerifyCallback(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, verr)
	assert.Equal(t, "1000.5", data["total_amount"])
}
