package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
)

type HashpwCmd struct {
	Password string `arg:"" optional:"" help:"Password to hash. Read from stdin when omitted."`
}

func (h *HashpwCmd) Run() error {
	return h.runWith(os.Stdin, os.Stdout)
}

func (h *HashpwCmd) runWith(in io.Reader, out io.Writer) error {
	password := h.Password
	if password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := cryptox.HashSecret(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
