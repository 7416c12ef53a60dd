package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"time"
)

// Test issuer and audience used by NewTestTokenProvider.
const (
	TestIssuer   = "test-issuer"
	TestAudience = "test-audience"
)

// testKeyPEM generates one RSA key pair per process and returns it PEM-encoded (PKCS#8 / PKIX).
var testKeyPEM = sync.OnceValues(func() ([2]string, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return [2]string{}, err
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return [2]string{}, err
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return [2]string{}, err
	}
	return [2]string{
		string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})),
		string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
	}, nil
})

// TestKeyPairPEM returns the process-wide test key pair as PEM strings. Tests only.
func TestKeyPairPEM() (privateKey, publicKey string, err error) {
	pair, err := testKeyPEM()
	return pair[0], pair[1], err
}

// NewTestTokenProvider returns an RS256 TokenProvider over the test key pair with TestIssuer,
// TestAudience and a 15 minute access TTL. Tests only.
func NewTestTokenProvider() (*TokenProvider, error) {
	privPEM, pubPEM, err := TestKeyPairPEM()
	if err != nil {
		return nil, err
	}
	signer, pub, err := LoadKeyPair(privPEM, pubPEM)
	if err != nil {
		return nil, err
	}
	return NewTokenProvider(signer, pub, TestIssuer, TestAudience, 15*time.Minute), nil
}
