package engine

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"

	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32 // AES-256 equivalent

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1

	headerSize = saltSize + nonceSize
)

// Cipher encrypts and decrypts values with keys derived from one password.
// It is safe for concurrent use.
type Cipher struct {
	secret Secret

	mu   sync.Mutex
	salt []byte
	keys map[string]*[keySize]byte
}

// NewCipher returns a Cipher bound to secret. The secret is not copied.
func NewCipher(secret Secret) *Cipher {
	return &Cipher{
		secret: secret,
		keys:   make(map[string]*[keySize]byte),
	}
}

// Encrypt trims value and returns it sealed and base64 encoded.
func (c *Cipher) Encrypt(value string) (string, error) {
	salt, err := c.encryptionSalt()
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptionFailed, err)
	}

	key, err := c.deriveKey(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptionFailed, err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptionFailed, err)
	}

	plaintext := []byte(strings.TrimSpace(value))
	out := make([]byte, 0, headerSize+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, key)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Every failure returns ErrDecryptionFailed.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil || len(raw) < headerSize+secretbox.Overhead {
		return "", kerrors.ErrDecryptionFailed
	}

	key, err := c.deriveKey(raw[:saltSize])
	if err != nil {
		return "", kerrors.ErrDecryptionFailed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[saltSize:headerSize])

	plaintext, ok := secretbox.Open(nil, raw[headerSize:], &nonce, key)
	if !ok {
		return "", kerrors.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// Close wipes every cached key. The Cipher can still be used afterwards but
// will derive keys again.
func (c *Cipher) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for salt, key := range c.keys {
		zeroize(key[:])
		delete(c.keys, salt)
	}
}

func (c *Cipher) encryptionSalt() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.salt == nil {
		salt := make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, err
		}
		c.salt = salt
	}

	return c.salt, nil
}

func (c *Cipher) deriveKey(salt []byte) (*[keySize]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key, ok := c.keys[string(salt)]; ok {
		return key, nil
	}

	derived, err := scrypt.Key(c.secret.bytes(), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, err
	}

	key := new([keySize]byte)
	copy(key[:], derived)
	zeroize(derived)

	c.keys[string(salt)] = key
	return key, nil
}

// EncryptValue encrypts a single value with a throwaway Cipher.
func EncryptValue(value string, password Secret) (string, error) {
	c := NewCipher(password)
	defer c.Close()
	return c.Encrypt(value)
}

// DecryptValue decrypts a single value with a throwaway Cipher.
func DecryptValue(ciphertext string, password Secret) (string, error) {
	c := NewCipher(password)
	defer c.Close()
	return c.Decrypt(ciphertext)
}
