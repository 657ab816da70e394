package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/ai8future/notecrypt"
	"github.com/ai8future/notecrypt/internal/config"
	"github.com/ai8future/notecrypt/internal/logger"
)

// inputSlack is read past the note limit so oversize input reaches the codec
// and fails with ErrPlaintextTooLarge instead of being silently truncated.
const inputSlack = 64 * 1024

// app carries the command's dependencies into the actions.
type app struct {
	cfg *config.Config
	log *logger.Logger
	in  io.Reader
	out io.Writer
}

func newCommand(cfg *config.Config, log *logger.Logger, in io.Reader, out io.Writer) *cli.Command {
	a := &app{cfg: cfg, log: log, in: in, out: out}

	return &cli.Command{
		Name:  "notecrypt",
		Usage: "Encrypt and decrypt notes with a secret phrase",
		Commands: []*cli.Command{
			{
				Name:   "encrypt",
				Usage:  "Encrypt a note into an envelope",
				Flags:  a.flags(true),
				Action: a.runEncrypt,
			},
			{
				Name:   "decrypt",
				Usage:  "Decrypt an envelope into a note",
				Flags:  a.flags(true),
				Action: a.runDecrypt,
			},
			{
				Name:   "upgrade",
				Usage:  "Re-encrypt an envelope under the configured version",
				Flags:  a.flags(true),
				Action: a.runUpgrade,
			},
			{
				Name:   "inspect",
				Usage:  "Print the version of an envelope",
				Flags:  a.flags(false),
				Action: a.runInspect,
			},
		},
	}
}

// flags returns a fresh flag set; urfave/cli flags must not be shared
// between commands.
func (a *app) flags(withPhrase bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "in",
			Aliases: []string{"i"},
			Usage:   "read input from `FILE` instead of stdin",
		},
	}
	if withPhrase {
		flags = append(flags,
			&cli.StringFlag{
				Name:  "phrase-file",
				Value: a.cfg.PhraseFile,
				Usage: "read the secret phrase from `FILE`",
			},
			&cli.StringFlag{
				Name:  "envelope-version",
				Value: a.cfg.Version,
				Usage: "envelope version to write (legacy, v1, v2)",
			},
		)
	}
	return flags
}

// commandLogger returns a child logger tagged with the subcommand name.
func (a *app) commandLogger(cmd *cli.Command) *logger.Logger {
	l := a.log.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("command", cmd.Name)
	})
	return l
}

func (a *app) runEncrypt(ctx context.Context, cmd *cli.Command) error {
	session, err := a.openSession(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	note, err := a.readInput(cmd)
	if err != nil {
		return err
	}

	envelope, err := session.Encrypt(string(note))
	if err != nil {
		return err
	}

	a.commandLogger(cmd).Info().
		Str("version", session.Codec().Version().String()).
		Int("note_bytes", len(note)).
		Int("envelope_bytes", len(envelope)).
		Msg("note encrypted")

	_, err = fmt.Fprintln(a.out, envelope)
	return err
}

func (a *app) runDecrypt(ctx context.Context, cmd *cli.Command) error {
	session, err := a.openSession(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	envelope, err := a.readEnvelope(cmd)
	if err != nil {
		return err
	}

	note, err := session.Decrypt(envelope)
	if err != nil {
		return err
	}

	a.commandLogger(cmd).Info().Int("note_bytes", len(note)).Msg("note decrypted")

	_, err = io.WriteString(a.out, note)
	return err
}

func (a *app) runUpgrade(ctx context.Context, cmd *cli.Command) error {
	session, err := a.openSession(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	envelope, err := a.readEnvelope(cmd)
	if err != nil {
		return err
	}

	from, err := notecrypt.EnvelopeVersion(envelope)
	if err != nil {
		return err
	}

	upgraded, err := session.Upgrade(envelope)
	if err != nil {
		return err
	}

	a.commandLogger(cmd).Info().
		Str("from", from.String()).
		Str("to", session.Codec().Version().String()).
		Bool("changed", upgraded != envelope).
		Msg("envelope upgraded")

	_, err = fmt.Fprintln(a.out, upgraded)
	return err
}

func (a *app) runInspect(ctx context.Context, cmd *cli.Command) error {
	envelope, err := a.readEnvelope(cmd)
	if err != nil {
		return err
	}

	v, err := notecrypt.EnvelopeVersion(envelope)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, v)
	return err
}

// openSession builds the codec from config and flags and seals the phrase
// into a session. The phrase file wins over NOTECRYPT_SECRET_PHRASE.
func (a *app) openSession(cmd *cli.Command) (*notecrypt.Session, error) {
	opts, err := a.cfg.CodecOptions(cmd.String("envelope-version"))
	if err != nil {
		return nil, err
	}
	codec, err := notecrypt.New(opts...)
	if err != nil {
		return nil, err
	}

	var phrase []byte
	if path := cmd.String("phrase-file"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read phrase file: %w", err)
		}
		phrase = bytes.TrimRight(raw, "\r\n")
		defer wipeBytes(raw)
	} else {
		phrase = []byte(a.cfg.SecretPhrase)
	}

	a.commandLogger(cmd).Debug().Str("version", codec.Version().String()).Msg("session opened")
	return notecrypt.NewSession(codec, phrase)
}

func (a *app) readInput(cmd *cli.Command) ([]byte, error) {
	r := a.in
	if path := cmd.String("in"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	limit := int64(a.cfg.MaxNoteSize)*2 + inputSlack
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// readEnvelope reads input and strips surrounding whitespace, which is never
// part of an envelope.
func (a *app) readEnvelope(cmd *cli.Command) (string, error) {
	data, err := a.readInput(cmd)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
