// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package history

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	"pawtune/internal/kv"
)

// sealedPrefix marks a credential sealed with secretbox.
const sealedPrefix = "sb1:"

// CredentialStore keeps one saved API key per client. When a secret is
// configured the key is sealed at rest with NaCl secretbox.
type CredentialStore struct {
	kv  kv.Store
	key *[32]byte
}

// NewCredentialStore creates a credential store. An empty secret stores
// credentials as plain text.
func NewCredentialStore(s kv.Store, secret string) *CredentialStore {
	cs := &CredentialStore{kv: s}
	if secret != "" {
		k := sha256.Sum256([]byte(secret))
		cs.key = &k
	}
	return cs
}

func credentialKey(client string) string { return "credential:" + client }

// Save stores the credential, replacing any previous one. An empty
// credential clears it.
func (c *CredentialStore) Save(ctx context.Context, client, credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return c.Clear(ctx, client)
	}

	value := credential
	if c.key != nil {
		var nonce [24]byte
		if _, err := rand.Read(nonce[:]); err != nil {
			return fmt.Errorf("credential nonce: %w", err)
		}
		sealed := secretbox.Seal(nonce[:], []byte(credential), &nonce, c.key)
		value = sealedPrefix + base64.StdEncoding.EncodeToString(sealed)
	}

	if err := c.kv.Set(ctx, credentialKey(client), []byte(value)); err != nil {
		return &StorageError{Op: "save credential", Err: err}
	}
	return nil
}

// Load returns the saved credential, or "" when none is saved.
func (c *CredentialStore) Load(ctx context.Context, client string) (string, error) {
	raw, err := c.kv.Get(ctx, credentialKey(client))
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &StorageError{Op: "load credential", Err: err}
	}

	value := string(raw)
	if !strings.HasPrefix(value, sealedPrefix) {
		return value, nil
	}
	if c.key == nil {
		return "", &StorageError{Op: "load credential", Err: errors.New("credential is sealed but no secret is configured")}
	}

	sealed, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil || len(sealed) < 24 {
		return "", &StorageError{Op: "load credential", Err: errors.New("malformed sealed credential")}
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, c.key)
	if !ok {
		return "", &StorageError{Op: "load credential", Err: errors.New("credential cannot be opened with the configured secret")}
	}
	return string(plain), nil
}

// Clear removes the saved credential.
func (c *CredentialStore) Clear(ctx context.Context, client string) error {
	if err := c.kv.Delete(ctx, credentialKey(client)); err != nil {
		return &StorageError{Op: "clear credential", Err: err}
	}
	return nil
}
