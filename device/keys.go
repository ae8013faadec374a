package device

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// SeedFromMnemonic derives the BIP39 binary seed: PBKDF2-HMAC-SHA512
// over the mnemonic with 2048 rounds and the "mnemonic" salt prefix.
func SeedFromMnemonic(mnemonic, passphrase string) []byte {
	return pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"+passphrase), 2048, 64, sha512.New)
}

// Keyholder is the secure-element seam: it derives keys along a path and
// signs. The production implementation lives in the element firmware;
// SeedKeyholder serves tests and host-side tooling.
type Keyholder interface {
	PublicKey(path Bip32Path) ([]byte, error)
	Sign(path Bip32Path, msg []byte) ([]byte, error)
}

type SeedKeyholder struct {
	seed []byte
}

func NewSeedKeyholder(seed []byte) *SeedKeyholder {
	return &SeedKeyholder{seed: seed}
}

// slip10Derive walks the SLIP-0010 Ed25519 tree. Every element must be
// hardened; the curve has no normal derivation.
func slip10Derive(seed []byte, path Bip32Path) ([32]byte, [32]byte, error) {
	var key, chain [32]byte
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	copy(key[:], sum[:32])
	copy(chain[:], sum[32:])

	for i := 0; i < path.Len; i++ {
		index := path.Elems[i]
		if index < hardenedOffset {
			return [32]byte{}, [32]byte{}, fmt.Errorf("ed25519 derivation requires hardened elements")
		}
		var data [37]byte
		data[0] = 0
		copy(data[1:33], key[:])
		binary.BigEndian.PutUint32(data[33:], index)
		mac = hmac.New(sha512.New, chain[:])
		mac.Write(data[:])
		sum = mac.Sum(nil)
		copy(key[:], sum[:32])
		copy(chain[:], sum[32:])
	}
	return key, chain, nil
}

func (k *SeedKeyholder) privateKey(path Bip32Path) (ed25519.PrivateKey, error) {
	key, _, err := slip10Derive(k.seed, path)
	if err != nil {
		return nil, err
	}
	return ed25519.NewKeyFromSeed(key[:]), nil
}

func (k *SeedKeyholder) PublicKey(path Bip32Path) ([]byte, error) {
	priv, err := k.privateKey(path)
	if err != nil {
		return nil, err
	}
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv.Public().(ed25519.PublicKey))
	return pub, nil
}

func (k *SeedKeyholder) Sign(path Bip32Path, msg []byte) ([]byte, error) {
	priv, err := k.privateKey(path)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(priv, msg), nil
}
