package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/pmaddams/cryt/attack"
	"github.com/pmaddams/cryt/criteria"
)

var sampleName = regexp.MustCompile(`^sample\((.+)\)$`)

// parseCriterion returns the named criterion. In addition to the names
// understood by criteria.Parse, sample(FILE) scores by the byte
// frequencies of FILE.
func parseCriterion(name string) (criteria.Criterion, error) {
	m := sampleName.FindStringSubmatch(name)
	if m == nil {
		c, err := criteria.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		return c, nil
	}
	f, err := os.Open(m[1])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return criteria.SampleFrequency(f)
}

// parseKeysizeCriterion returns the named keysize criterion.
func parseKeysizeCriterion(name string) (attack.KeysizeCriterion, error) {
	if name != "hamming-distance" {
		return nil, fmt.Errorf("%w: unknown keysize criterion %q", errUsage, name)
	}
	return attack.HammingDistance, nil
}

// attack runs the single-byte attack, or the keysize or repeated attack
// named after its flags.
func (c *cmd) attack(args []string) error {
	fs := c.flags("attack xor")
	name := fs.String("c", "printable", "criterion to be used for scoring the results")
	detailed := fs.Bool("d", false, "print the key and score with the decrypted result")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		switch fs.Arg(0) {
		case "keysize":
			return c.keysize(fs.Args()[1:])
		case "repeated":
			return c.repeated(fs.Args()[1:])
		}
		return fmt.Errorf("%w: unknown attack %q", errUsage, fs.Arg(0))
	}
	crit, err := parseCriterion(*name)
	if err != nil {
		return err
	}
	buf, err := c.read()
	if err != nil {
		return err
	}
	res := attack.SingleByte(buf, crit)
	if !*detailed {
		_, err = c.stdout.Write(res.Plaintext)
		return err
	}
	p := c.printer()
	_, err = fmt.Fprintf(c.stdout, "%s %d\t%s %v\t%s %s\n",
		p.label("Key:"), res.Key,
		p.label("Score:"), res.Score,
		p.label("Result:"), res.Plaintext)
	return err
}

// rangeFlags adds the keysize range flags to fs.
func (c *cmd) rangeFlags(fs *flag.FlagSet) (lower, upper *int) {
	lower = fs.Int("min", 1, "minimum keysize to try")
	upper = fs.Int("max", c.cfg.MaxKeysize, "maximum keysize to try")
	return
}

// checkRange rejects a keysize upper bound above the configured ceiling.
func (c *cmd) checkRange(upper int) error {
	if upper > c.cfg.KeysizeCeiling {
		return fmt.Errorf("%w: -max %d exceeds %d", errUsage, upper, c.cfg.KeysizeCeiling)
	}
	return nil
}

// keysize prints the ranked keysize candidates for stdin.
func (c *cmd) keysize(args []string) error {
	fs := c.flags("attack xor keysize")
	name := fs.String("c", "hamming-distance", "criterion to determine keysize")
	lower, upper := c.rangeFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := c.checkRange(*upper); err != nil {
		return err
	}
	crit, err := parseKeysizeCriterion(*name)
	if err != nil {
		return err
	}
	buf, err := c.read()
	if err != nil {
		return err
	}
	sizes, err := attack.Keysizes(buf, *lower, *upper, crit)
	if err != nil {
		return err
	}
	p := c.printer()
	for i, k := range sizes {
		line := fmt.Sprintf("Size: %d\tScore: %v", k.Size, k.Score)
		if i == 0 {
			line = p.best(line)
		}
		if _, err := fmt.Fprintln(c.stdout, line); err != nil {
			return err
		}
	}
	return nil
}

// repeated breaks repeating-key XOR and prints the key and plaintext.
func (c *cmd) repeated(args []string) error {
	fs := c.flags("attack xor repeated")
	keysizeName := fs.String("k", "hamming-distance", "criterion to determine keysize")
	columnName := fs.String("x", "text", "criterion to be used for scoring the intermediate block results")
	resultName := fs.String("c", "text", "criterion to be used for scoring the results for different keysizes")
	tries := fs.Int("t", 1, "number of keysizes to try")
	lower, upper := c.rangeFlags(fs)
	verbose := fs.Bool("v", false, "log the keysizes tried")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := c.checkRange(*upper); err != nil {
		return err
	}
	var (
		r   = attack.Repeated{Min: *lower, Max: *upper, Tries: *tries}
		err error
	)
	if r.Keysize, err = parseKeysizeCriterion(*keysizeName); err != nil {
		return err
	}
	if r.Column, err = parseCriterion(*columnName); err != nil {
		return err
	}
	if r.Result, err = parseCriterion(*resultName); err != nil {
		return err
	}
	buf, err := c.read()
	if err != nil {
		return err
	}
	res, err := r.Attack(buf)
	if err != nil {
		return err
	}
	if *verbose {
		for _, k := range res.Keysizes {
			log.Printf("tried keysize %d (score %v)", k.Size, k.Score)
		}
		log.Printf("selected keysize %d (result score %v)", len(res.Key), res.Score)
	}
	p := c.printer()
	_, err = fmt.Fprintf(c.stdout, "%s %s\n%s\n%s",
		p.label("Key:"), p.key(res.Key),
		p.label("Decrypted:"), res.Plaintext)
	return err
}
