// Command cipherkit encodes, decodes and breaks classical substitution ciphers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/cache"
	"github.com/gobeaver/cipherkit/cipher"
	"github.com/gobeaver/cipherkit/corpus"
	"github.com/gobeaver/cipherkit/database"
	"github.com/gobeaver/cipherkit/dictionary"
	"github.com/gobeaver/cipherkit/hacker"
	"github.com/gobeaver/cipherkit/person"
	"github.com/gobeaver/cipherkit/store"

	_ "github.com/gobeaver/cipherkit/corpus/driver/azblob"
	_ "github.com/gobeaver/cipherkit/corpus/driver/gcs"
	_ "github.com/gobeaver/cipherkit/corpus/driver/local"
	_ "github.com/gobeaver/cipherkit/corpus/driver/s3"
	_ "github.com/gobeaver/cipherkit/corpus/driver/sftp"
)

const usage = `usage: cipherkit <command> [flags] [text]

commands:
  encode   encode text with the configured cipher
  decode   decode text with the configured cipher
  verify   run the cipher self-test
  hack     recover plaintext and key from a ciphertext
  demo     run every cipher and the hacker on a sample sentence

Text is read from the arguments, or from stdin when none are given.
Defaults come from BEAVER_CIPHER_*, BEAVER_HACKER_*, BEAVER_DICTIONARY_*,
BEAVER_CORPUS_*, BEAVER_CACHE_* and BEAVER_DB_* variables and .env.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "encode", "decode":
		return runCodec(args[0], args[1:], stdin, stdout, stderr)
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "hack":
		return runHack(ctx, args[1:], stdin, stdout, stderr)
	case "demo":
		return runDemo(ctx, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

// cipherFlags binds the cipher settings to a flag set, defaulting to the environment.
func cipherFlags(name string, stderr io.Writer) (*flag.FlagSet, *cipher.Config, error) {
	cfg, err := cipher.GetConfig()
	if err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Alphabet, "alphabet", cfg.Alphabet, "alphabet: printable or uppercase")
	fs.StringVar(&cfg.Family, "family", cfg.Family, "cipher: identity, caesar, multiplication, affine, keyword")
	fs.IntVar(&cfg.Shift, "shift", cfg.Shift, "caesar and affine shift")
	fs.IntVar(&cfg.Multiplier, "multiplier", cfg.Multiplier, "multiplication and affine multiplier")
	fs.StringVar(&cfg.Keyword, "keyword", cfg.Keyword, "keyword cipher key")
	return fs, cfg, nil
}

func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func runCodec(mode string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs, cfg, err := cipherFlags(mode, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c, err := cipher.New(*cfg)
	if err != nil {
		fmt.Fprintf(stderr, "cipher: %v\n", err)
		return 1
	}
	text, err := readText(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}

	var out string
	if mode == "encode" {
		out, err = person.NewSender(c, text).Operate()
	} else {
		out, err = person.NewReceiver(c, text).Operate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", mode, err)
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	fs, cfg, err := cipherFlags("verify", stderr)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c, err := cipher.New(*cfg)
	if err != nil {
		fmt.Fprintf(stderr, "cipher: %v\n", err)
		return 1
	}
	if err := (&person.Person{Cipher: c}).Check(); err != nil {
		fmt.Fprintf(stderr, "%s cipher failed verification: %v\n", c.Name(), err)
		return 1
	}
	fmt.Fprintf(stdout, "%s cipher verified\n", c.Name())
	return 0
}

func runHack(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	hcfg, err := hacker.GetConfig()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	ccfg, err := cipher.GetConfig()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("hack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	alphabetName := fs.String("alphabet", ccfg.Alphabet, "alphabet: printable or uppercase")
	familyName := fs.String("family", ccfg.Family, "cipher family to attack")
	dictPath := fs.String("dict", "", "local word list; overrides BEAVER_DICTIONARY_PATH and the corpus driver")
	fs.IntVar(&hcfg.Workers, "workers", hcfg.Workers, "candidates decoded concurrently (0 = GOMAXPROCS)")
	fs.BoolVar(&hcfg.Journal, "journal", hcfg.Journal, "record the attempt in the database")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: hcfg.Level()}))

	a, err := alphabet.Lookup(*alphabetName)
	if err != nil {
		fmt.Fprintf(stderr, "alphabet: %v\n", err)
		return 1
	}
	family, err := cipher.ParseFamily(*familyName)
	if err != nil {
		fmt.Fprintf(stderr, "family: %v\n", err)
		return 1
	}
	text, err := readText(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}

	dict, err := loadDictionary(ctx, *dictPath)
	if err != nil {
		fmt.Fprintf(stderr, "dictionary: %v\n", err)
		return 1
	}

	h, err := hacker.New(a, dict, append(hcfg.Options(), hacker.WithLogger(logger))...)
	if err != nil {
		fmt.Fprintf(stderr, "hacker: %v\n", err)
		return 1
	}

	var opts []hacker.ServiceOption
	c, err := cache.NewFromEnv()
	if err != nil {
		logger.Warn("result cache unavailable", slog.Any("error", err))
	} else if c != nil {
		defer c.Close()
		opts = append(opts, hacker.WithCache(c, hcfg.CacheTTL))
	}
	if hcfg.Journal {
		repo, closeDB, err := openJournal()
		if err != nil {
			fmt.Fprintf(stderr, "journal: %v\n", err)
			return 1
		}
		defer closeDB()
		opts = append(opts, hacker.WithJournal(repo))
	}

	res, err := hacker.NewService(h, opts...).Hack(ctx, text, family)
	if err != nil {
		fmt.Fprintf(stderr, "hack: %v\n", err)
		return 1
	}
	printResult(stdout, res)
	return 0
}

// loadDictionary reads the word list from path when given, from SQL when
// BEAVER_DICTIONARY_QUERY is set, and from the configured corpus source otherwise.
func loadDictionary(ctx context.Context, path string) (*dictionary.Dictionary, error) {
	dcfg, err := dictionary.GetConfig()
	if err != nil {
		return nil, err
	}
	ccfg, err := corpus.GetConfig()
	if err != nil {
		return nil, err
	}

	if path == "" && dcfg.Query != "" {
		db, err := database.OpenFromEnv()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return dictionary.LoadSQL(ctx, db.SQL(), dcfg.Query)
	}

	if path != "" {
		ccfg.Driver = "local"
		ccfg.LocalBasePath = filepath.Dir(path)
		dcfg.Path = filepath.Base(path)
	}
	return dictionary.Open(ctx, *dcfg, *ccfg)
}

func openJournal() (*store.Repository, func(), error) {
	dbcfg, err := database.GetConfig()
	if err != nil {
		return nil, nil, err
	}
	dbcfg.UseORM = "gorm"

	db, err := database.Open(*dbcfg)
	if err != nil {
		return nil, nil, err
	}
	gdb, err := db.GORM()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	repo, err := store.New(gdb, dbcfg.AutoMigrate)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, func() { db.Close() }, nil
}

func printResult(w io.Writer, res *hacker.Result) {
	fmt.Fprintf(w, "family:    %s\n", res.Family)
	switch res.Family {
	case cipher.FamilyCaesar:
		fmt.Fprintf(w, "key:       shift=%d\n", res.Key.Shift)
	case cipher.FamilyMultiplication:
		fmt.Fprintf(w, "key:       multiplier=%d\n", res.Key.Multiplier)
	case cipher.FamilyAffine:
		fmt.Fprintf(w, "key:       shift=%d multiplier=%d\n", res.Key.Shift, res.Key.Multiplier)
	case cipher.FamilyKeyword:
		fmt.Fprintf(w, "key:       keyword=%q\n", res.Key.Keyword)
	}
	fmt.Fprintf(w, "score:     %d (%d trials, %d skipped)\n", res.Score, res.Trials, res.Skipped)
	if res.EarlyExit {
		fmt.Fprintln(w, "early exit: yes")
	}
	if res.Cached {
		fmt.Fprintln(w, "cached:    yes")
	}
	fmt.Fprintf(w, "plaintext: %s\n", res.Plaintext)
}

const demoSentence = "This is a sentence."

func runDemo(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dictPath := fs.String("dict", "", "word list for the hacker; a tiny built-in list is used otherwise")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	a := alphabet.Printable()

	ciphers := []cipher.Cipher{
		cipher.NewCaesar(a, 23),
		cipher.NewMultiplication(a, 23),
		cipher.NewAffine(a, 2, 23),
		cipher.NewKeyword(a, "aahed"),
	}
	for _, c := range ciphers {
		enc, err := person.NewSender(c, demoSentence).Operate()
		if err != nil {
			fmt.Fprintf(stderr, "%s encode: %v\n", c.Name(), err)
			return 1
		}
		receiver := person.NewReceiver(c, enc)
		dec, err := receiver.Operate()
		if err != nil {
			fmt.Fprintf(stderr, "%s decode: %v\n", c.Name(), err)
			return 1
		}
		fmt.Fprintf(stdout, "%s encoded text: %s\n", c.Name(), enc)
		fmt.Fprintf(stdout, "%s decoded text: %s\n", c.Name(), dec)
		if err := receiver.Check(); err != nil {
			fmt.Fprintf(stdout, "%s verification failed: %v\n", c.Name(), err)
		}
		fmt.Fprintln(stdout)
	}

	var dict *dictionary.Dictionary
	if *dictPath != "" {
		var err error
		if dict, err = loadDictionary(ctx, *dictPath); err != nil {
			fmt.Fprintf(stderr, "dictionary: %v\n", err)
			return 1
		}
	} else {
		dict = dictionary.New("a", "aahed", "is", "sentence", "this")
	}

	h, err := hacker.New(a, dict)
	if err != nil {
		fmt.Fprintf(stderr, "hacker: %v\n", err)
		return 1
	}

	targets := []cipher.Cipher{
		cipher.NewCaesar(a, 22),
		cipher.NewMultiplication(a, 3),
		cipher.NewAffine(a, 2, 3),
		cipher.NewKeyword(a, "aahed"),
	}
	for _, c := range targets {
		enc, err := c.Encode(demoSentence)
		if err != nil {
			fmt.Fprintf(stderr, "%s encode: %v\n", c.Name(), err)
			return 1
		}
		fmt.Fprintf(stdout, "Hacker encoded %s text: %s\n", c.Name(), enc)
		res, err := h.Hack(ctx, enc, c.Family())
		switch {
		case errors.Is(err, hacker.ErrNoCandidateFound):
			fmt.Fprintf(stdout, "Hacker found no candidate for %s\n\n", c.Name())
			continue
		case err != nil:
			fmt.Fprintf(stderr, "hack %s: %v\n", c.Name(), err)
			return 1
		}
		fmt.Fprintf(stdout, "Hacker bruteforce decoded %s text: %s\n\n", c.Name(), res.Plaintext)
	}
	return 0
}
