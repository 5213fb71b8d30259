package ports

// EncryptionService encrypts credentials before storage and decrypts them
// when an adapter is constructed.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
