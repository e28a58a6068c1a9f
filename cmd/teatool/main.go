package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"tea-go/pkg/log"
	"tea-go/pkg/tea"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// Version information - will be set at build time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	log.SetStd()

	viper.SetEnvPrefix("teatool") // will be uppercased automatically, TEATOOL_...
	viper.AutomaticEnv()
	viper.SetDefault("rounds", tea.NumRounds)

	app := &cli.App{
		Name:    "teatool",
		Usage:   "encrypt and decrypt single TEA blocks",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Commands: []*cli.Command{
			{
				Name:      "encrypt",
				Usage:     "encrypt one 8-byte block given as 16 hex digits",
				ArgsUsage: "<block-hex>",
				Flags:     keyFlags(),
				Action: func(ctx *cli.Context) error {
					return transformAction(ctx, true)
				},
			},
			{
				Name:      "decrypt",
				Usage:     "decrypt one 8-byte block given as 16 hex digits",
				ArgsUsage: "<block-hex>",
				Flags:     keyFlags(),
				Action: func(ctx *cli.Context) error {
					return transformAction(ctx, false)
				},
			},
			{
				Name:   "info",
				Usage:  "print the cipher's size constants",
				Action: infoAction,
			},
			{
				Name:   "selftest",
				Usage:  "check the cipher against the published reference vectors",
				Action: selftestAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func keyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "128-bit key as 32 hex digits (falls back to TEATOOL_KEY)",
		},
		&cli.StringFlag{
			Name:  "key-words",
			Usage: "128-bit key as 4 comma-separated 32-bit words (decimal or 0x-hex)",
		},
		&cli.IntFlag{
			Name:    "rounds",
			Aliases: []string{"r"},
			Usage:   "number of mixing rounds (falls back to TEATOOL_ROUNDS, then 32)",
		},
	}
}

// cipherFromContext builds a cipher from the command flags, falling back
// to the viper-bound environment for key material and rounds.
func cipherFromContext(ctx *cli.Context) (*tea.Cipher, error) {
	rounds := ctx.Int("rounds")
	if !ctx.IsSet("rounds") {
		rounds = viper.GetInt("rounds")
	}

	if words := ctx.String("key-words"); words != "" {
		k, err := tea.ParseKeyWords(strings.Split(words, ","))
		if err != nil {
			return nil, err
		}
		return tea.NewCipherFromWords(k, rounds)
	}

	keyHex := ctx.String("key")
	if keyHex == "" {
		keyHex = viper.GetString("key")
	}
	if keyHex == "" {
		return nil, fmt.Errorf("no key material given: use --key, --key-words or TEATOOL_KEY")
	}
	key, err := tea.ParseKey(keyHex)
	if err != nil {
		return nil, err
	}
	return tea.NewCipherWithRounds(key, rounds)
}

func transformAction(ctx *cli.Context, encrypt bool) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one block argument (%d hex digits)", 2*tea.BlockSize)
	}
	block, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("failed to decode block hex: %w", err)
	}

	c, err := cipherFromContext(ctx)
	if err != nil {
		return err
	}

	var out []byte
	if encrypt {
		out, err = c.Encrypt(block)
	} else {
		out, err = c.Decrypt(block)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%x\n", out)
	return nil
}

func infoAction(ctx *cli.Context) error {
	fmt.Printf("key size:       %d bytes\n", tea.KeySize)
	fmt.Printf("block size:     %d bytes\n", tea.BlockSize)
	fmt.Printf("default rounds: %d\n", tea.NumRounds)
	return nil
}

// Reference vectors sourced from the ironclad TEA test vector set.
var selftestVectors = []struct {
	rounds     int
	key        string
	plaintext  string
	ciphertext string
}{
	{32, "00000000000000000000000000000000", "0000000000000000", "41ea3a0a94baa940"},
	{32, "ffffffffffffffffffffffffffffffff", "ffffffffffffffff", "319bbefb016abdb2"},
	{8, "00000000000000000000000000000000", "0000000000000000", "ed285da1455b33c1"},
}

func selftestAction(ctx *cli.Context) error {
	for i, v := range selftestVectors {
		key, err := tea.ParseKey(v.key)
		if err != nil {
			return err
		}
		c, err := tea.NewCipherWithRounds(key, v.rounds)
		if err != nil {
			return err
		}

		plaintext, _ := hex.DecodeString(v.plaintext)
		want, _ := hex.DecodeString(v.ciphertext)

		got, err := c.Encrypt(plaintext)
		if err != nil {
			return err
		}
		if !bytes.Equal(got, want) {
			return fmt.Errorf("vector #%d: ciphertext %x, want %x", i, got, want)
		}

		back, err := c.Decrypt(got)
		if err != nil {
			return err
		}
		if !bytes.Equal(back, plaintext) {
			return fmt.Errorf("vector #%d: round-trip gave %x, want %x", i, back, plaintext)
		}

		log.Printf("vector #%d ok (rounds=%d)", i, v.rounds)
	}

	log.Info().Msg("selftest passed")
	return nil
}
