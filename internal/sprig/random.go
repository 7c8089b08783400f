// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package sprig

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// referenceAlphabet leaves out characters that are easily confused when read over the phone
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// reference creates a booking reference like K7QM-2XHD
func reference() (string, error) {
	buf := make([]byte, 8)
	_, err := rand.Read(buf)
	if err != nil {
		return "", err
	}

	var ref strings.Builder
	for i, b := range buf {
		if i == 4 {
			ref.WriteByte('-')
		}
		ref.WriteByte(referenceAlphabet[int(b)%len(referenceAlphabet)])
	}

	return ref.String(), nil
}

// maxRandBytes limits randBytes to amounts useful in tokens and file names
const maxRandBytes = 4096

// randBytes is count random bytes, URL safe base64 encoded
func randBytes(count int) (string, error) {
	if count < 0 || count > maxRandBytes {
		return "", fmt.Errorf("randBytes count must be between 0 and %d", maxRandBytes)
	}

	buf := make([]byte, count)
	_, err := rand.Read(buf)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func uuidv4() string {
	return uuid.NewString()
}
