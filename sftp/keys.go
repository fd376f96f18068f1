package sftp

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// GeneratesRSAKeys generates a new RSA key pair and returns the private and public keys in PEM format.
func GeneratesRSAKeys(bitSize int) (privateKeyFile, publicKeyFile []byte, err error) {

	// Safeguard: Only allow certain key sizes.
	validBitSizes := map[int]bool{2048: true, 3072: true, 4096: true}
	if !validBitSizes[bitSize] {
		return nil, nil, fmt.Errorf("invalid bit size: %d", bitSize)
	}

	// Generate RSA Key with the specified bit size.
	privateKey, err := rsa.GenerateKey(rand.Reader, bitSize)
	if err != nil {
		err = fmt.Errorf("error generating RSA private key: %w", err)
		return
	}

	// Convert the private key to PEM format.
	privateKeyPEM := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	privateKeyFile = pem.EncodeToMemory(privateKeyPEM)

	// Generate and write the public key.
	publicKeyDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		err = fmt.Errorf("error marshaling RSA public key: %w", err)
		return
	}

	publicKeyPEM := &pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: publicKeyDER,
	}

	publicKeyFile = pem.EncodeToMemory(publicKeyPEM)

	return privateKeyFile, publicKeyFile, nil
}

// GeneratesED25519Keys generates a new Ed25519 key pair and returns the private and public keys in PEM format.
func GeneratesED25519Keys() (privateKeyFile, publicKeyFile []byte, err error) {
	// Generate an Ed25519 key.
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		err = fmt.Errorf("error generating Ed25519 private key: %w", err)
		return
	}

	// Convert the private key to PEM format.
	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		err = fmt.Errorf("error marshaling Ed25519 private key: %w", err)
		return
	}

	privateKeyPEM := &pem.Block{Type: "PRIVATE KEY", Bytes: privateKeyBytes}

	privateKeyFile = pem.EncodeToMemory(privateKeyPEM)

	// Now generate and write the public key
	publicKeyBytes, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		err = fmt.Errorf("error marshaling Ed25519 public key: %w", err)
		return
	}

	publicKeyPEM := &pem.Block{Type: "PUBLIC KEY", Bytes: publicKeyBytes}
	publicKeyFile = pem.EncodeToMemory(publicKeyPEM)
	return
}
