package ftp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse failure classes. The interpreter maps each class to its reply code,
// so the distinctions here are load-bearing: a missing argument answers 501,
// a malformed one 504, an unknown verb 500, and a malformed host-port 501.
var (
	ErrInvalidCommand = errors.New("command not found")
	ErrArgMissing     = errors.New("missing required argument")
	ErrBadArg         = errors.New("provided argument was invalid")
	ErrBadHostPort    = errors.New("could not parse host-port address")
)

// TypeSpec is the parsed argument of TYPE. Code is one of A/E/I/L; Format
// applies to A and E (N/T/C, default N); ByteSize applies to L.
type TypeSpec struct {
	Code     byte
	Format   byte
	ByteSize uint8
}

// Command is one parsed control-channel command. Verb is always set; the
// remaining fields are populated according to the verb's argument grammar.
type Command struct {
	Verb Verb
	Arg  string
	Addr HostPort
	Type TypeSpec
	Stru byte
	Mode byte
}

// ParseCommand maps one control line to a typed command. The verb is
// case-insensitive; path and name arguments take the whole remainder of the
// line, so file names may contain spaces.
func ParseCommand(line string) (Command, error) {
	verbToken, rest, _ := strings.Cut(line, " ")
	verb := Verb(strings.ToUpper(verbToken))
	if !verbs[verb] {
		return Command{}, fmt.Errorf("%q: %w", verbToken, ErrInvalidCommand)
	}
	cmd := Command{Verb: verb}

	switch verb {
	case USER, PASS, RETR, STOR, CWD, MKD, DELE, RNFR, RNTO:
		if rest == "" {
			return Command{}, fmt.Errorf("%s: %w", verb, ErrArgMissing)
		}
		cmd.Arg = rest

	case NLST, LIST:
		cmd.Arg = rest

	case PORT:
		if rest == "" {
			return Command{}, fmt.Errorf("%s: %w", verb, ErrArgMissing)
		}
		addr, err := ParseHostPort(rest)
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", verb, ErrBadHostPort)
		}
		cmd.Addr = addr

	case TYPE:
		spec, err := parseTypeSpec(rest)
		if err != nil {
			return Command{}, err
		}
		cmd.Type = spec

	case STRU:
		b, err := parseLetter(rest, "FRP")
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", verb, err)
		}
		cmd.Stru = b

	case MODE:
		b, err := parseLetter(rest, "SBC")
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", verb, err)
		}
		cmd.Mode = b
	}
	return cmd, nil
}

func parseLetter(arg, allowed string) (byte, error) {
	if arg == "" {
		return 0, ErrArgMissing
	}
	if len(arg) != 1 || !strings.Contains(allowed, arg) {
		return 0, fmt.Errorf("%q: %w", arg, ErrBadArg)
	}
	return arg[0], nil
}

// parseTypeSpec handles TYPE's two-token grammar: a data type letter, then
// for A/E an optional format letter and for L a required byte size.
func parseTypeSpec(arg string) (TypeSpec, error) {
	if arg == "" {
		return TypeSpec{}, fmt.Errorf("TYPE: %w", ErrArgMissing)
	}
	code, sub, _ := strings.Cut(arg, " ")
	if len(code) != 1 {
		return TypeSpec{}, fmt.Errorf("TYPE %q: %w", arg, ErrBadArg)
	}
	spec := TypeSpec{Code: code[0]}
	switch spec.Code {
	case 'A', 'E':
		spec.Format = 'N'
		if sub != "" {
			b, err := parseLetter(sub, "NTC")
			if err != nil {
				return TypeSpec{}, fmt.Errorf("TYPE format: %w", ErrBadArg)
			}
			spec.Format = b
		}
	case 'I':
		// Image type has no sub-argument; a stray one is ignored.
	case 'L':
		if sub == "" {
			return TypeSpec{}, fmt.Errorf("TYPE L byte size: %w", ErrArgMissing)
		}
		n, err := strconv.ParseUint(sub, 10, 8)
		if err != nil {
			return TypeSpec{}, fmt.Errorf("TYPE L byte size %q: %w", sub, ErrBadArg)
		}
		spec.ByteSize = uint8(n)
	default:
		return TypeSpec{}, fmt.Errorf("TYPE %q: %w", code, ErrBadArg)
	}
	return spec, nil
}
