package payment

import (
	"PixGen-Backend/domain"
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Field is one key=value pair of the canonical signature message. Field
// order is part of the gateway contract and must never be reordered.
type Field struct {
	Key   string
	Value string
}

type (
	SignatureCodec interface {
		// SignFields computes the HMAC-SHA256 signature over the fields
		// joined as "key=value" pairs separated by commas, in the given
		// order, base64-encoded.
		SignFields(fields []Field) string

		// SignCheckout signs the outbound checkout form using the fixed
		// field order total_amount,transaction_uuid,product_code.
		SignCheckout(totalAmount, txnUUID string) string

		// VerifyCallback decodes a URL-encoded, base64-encoded JSON
		// callback payload, rebuilds the signed message from the order
		// declared in signed_field_names and checks the signature in
		// constant time. Returns the decoded fields on success.
		VerifyCallback(encoded string) (map[string]string, error)
	}

	esewaCodec struct {
		productCode string
		secretKey   []byte
	}
)

func NewEsewaCodec(productCode, secretKey string) SignatureCodec {
	return &esewaCodec{
		productCode: productCode,
		secretKey:   []byte(secretKey),
	}
}

func (c *esewaCodec) SignFields(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Key+"="+f.Value)
	}
	message := strings.Join(parts, ",")

	mac := hmac.New(sha256.New, c.secretKey)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (c *esewaCodec) SignCheckout(totalAmount, txnUUID string) string {
	return c.SignFields([]Field{
		{Key: "total_amount", Value: totalAmount},
		{Key: "transaction_uuid", Value: txnUUID},
		{Key: "product_code", Value: c.productCode},
	})
}

func (c *esewaCodec) VerifyCallback(encoded string) (map[string]string, error) {
	// PathUnescape decodes percent-escapes but leaves "+" alone, which
	// base64 payloads contain.
	unescaped, err := url.PathUnescape(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	raw, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	// UseNumber keeps numeric literals intact so the rebuilt message
	// matches the bytes the gateway signed.
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	data := make(map[string]string, len(payload))
	for key, value := range payload {
		data[key] = stringifyField(value)
	}

	signedNames, ok := data["signed_field_names"]
	if !ok || signedNames == "" {
		return nil, fmt.Errorf("%w: missing signed_field_names", domain.ErrMalformedPayload)
	}
	signature, ok := data["signature"]
	if !ok || signature == "" {
		return nil, fmt.Errorf("%w: missing signature", domain.ErrMalformedPayload)
	}

	// Rebuild the exact message the gateway signed, in the order the
	// callback itself declares.
	fields := make([]Field, 0, len(data))
	for _, key := range strings.Split(signedNames, ",") {
		if value, ok := data[key]; ok {
			fields = append(fields, Field{Key: key, Value: value})
		}
	}

	expected := c.SignFields(fields)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, domain.ErrInvalidSignature
	}

	return data, nil
}

func stringifyField(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
