package sftp

import (
	"fmt"
	"testing"

	"golang.org/x/crypto/ssh"
)

func Test_GeneratesRSAKeys(t *testing.T) {
	tests := []struct {
		keySize int
	}{
		{2048},
		{3072},
	}

	for _, tt := range tests {
		t.Run("RSAKeySize"+fmt.Sprintf("%d", tt.keySize), func(t *testing.T) {
			privateKey, publicKey, err := GeneratesRSAKeys(tt.keySize)
			if err != nil {
				t.Fatal(err)
			}
			if len(publicKey) == 0 {
				t.Error("empty public key")
			}
			if _, err := ssh.ParsePrivateKey(privateKey); err != nil {
				t.Errorf("generated key does not parse as an ssh key: %v", err)
			}
		})
	}

	if _, _, err := GeneratesRSAKeys(1024); err == nil {
		t.Error("undersized key was accepted")
	}
}

func Test_GeneratesED25519Keys(t *testing.T) {
	privateKey, publicKey, err := GeneratesED25519Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(publicKey) == 0 {
		t.Error("empty public key")
	}
	if _, err := ssh.ParsePrivateKey(privateKey); err != nil {
		t.Errorf("generated key does not parse as an ssh key: %v", err)
	}
}
