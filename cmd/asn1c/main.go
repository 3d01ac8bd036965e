// Command asn1c is a round-trip demonstration harness: it loads a type A
// fixture from a YAML file, encodes it with the UPER codec, logs the hex
// encoding, decodes it back, and confirms the two values match. It is not
// an ASN.1 schema compiler — no grammar is parsed here.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"sigs.k8s.io/yaml"

	"github.com/go-asn1/uper/types"
)

func main() {
	var (
		filename = flag.String("file", "", "YAML fixture file for type A")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if len(*filename) == 0 {
		log.Error().Msg("input fixture file required (-file)")
		os.Exit(1)
	}

	if err := run(*filename); err != nil {
		log.Error().Err(err).Msg("round trip failed")
		os.Exit(1)
	}
}

func run(filename string) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var value types.A
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return err
	}

	buf := make([]byte, 64)
	n, err := value.Encode(buf)
	if err != nil {
		return err
	}
	log.Info().Str("hex", toHex(buf[:n])).Int("bytes", n).Msg("encoded")

	decoded, consumed, err := types.DecodeA(buf[:n])
	if err != nil {
		return err
	}
	log.Info().Int("bytes", consumed).Msg("decoded")

	if decoded != value {
		log.Error().Interface("want", value).Interface("got", decoded).Msg("round trip mismatch")
		os.Exit(1)
	}
	log.Info().Msg("round trip ok")
	return nil
}

func toHex(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}
