// Package engine encrypts and decrypts the values of .env files line by line.
//
// Only the value half of a KEY=VALUE line is ever changed. Comments, blank
// lines, lines without an '=' and the key text (including any whitespace
// around it) are written back exactly as they were read.
//
// # Encryption Scheme
//
// Each value is sealed independently:
//
//  1. A 256-bit key is derived from the password with scrypt (N=32768, r=8, p=1)
//     and a random 16-byte salt
//  2. The trimmed value is sealed with NaCl secretbox under a random 24-byte nonce
//  3. salt || nonce || box is encoded with standard, padded base64
//
// Encrypting the same value twice produces different output. A Cipher keeps
// one salt for everything it encrypts and caches derived keys by salt, so a
// whole batch pays for scrypt once.
//
// # Failure Semantics
//
// Decryption fails with ErrDecryptionFailed for a wrong password, invalid
// base64, truncated input or a failed authentication check. The causes are
// indistinguishable on purpose so the error cannot be used as a password
// oracle.
//
// ProcessFile is all-or-nothing: if any line fails to decrypt, no output is
// returned.
//
// # Line Endings
//
// Files are split on '\n' with a trailing '\r' removed from each line, and
// rejoined with '\n'. CRLF input therefore comes back as LF and a final
// trailing newline is dropped.
//
// # Encryption Heuristic
//
// IsLikelyEncrypted only checks that a value is valid base64 of at least
// eight characters. Short ciphertext or long base64-looking plaintext can be
// misclassified; ValidateLooksEncrypted is a lenient gate, not a proof.
package engine
