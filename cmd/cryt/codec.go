package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

var encoders = map[string]func([]byte) string{
	"hex":    hex.EncodeToString,
	"base64": base64.StdEncoding.EncodeToString,
}

var decoders = map[string]func(string) ([]byte, error){
	"hex":    hex.DecodeString,
	"base64": base64.StdEncoding.DecodeString,
}

// encode reads stdin and prints it in the named encoding.
func (c *cmd) encode(name string) error {
	enc, ok := encoders[name]
	if !ok {
		return fmt.Errorf("%w: unknown encoding %q", errUsage, name)
	}
	buf, err := c.read()
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.stdout, enc(buf))
	return err
}

// decode reads text in the named encoding and prints the decoded bytes.
// Whitespace in the input is ignored.
func (c *cmd) decode(name string) error {
	dec, ok := decoders[name]
	if !ok {
		return fmt.Errorf("%w: unknown encoding %q", errUsage, name)
	}
	buf, err := c.read()
	if err != nil {
		return err
	}
	res, err := dec(string(bytes.Join(bytes.Fields(buf), nil)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	_, err = c.stdout.Write(res)
	return err
}
