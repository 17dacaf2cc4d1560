package chains

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// AddressFamily identifies the address encoding used by a chain.
type AddressFamily int

const (
	// FamilyUnknown means no family is registered; both formats are tried.
	FamilyUnknown AddressFamily = iota
	// FamilyHex is the 20-byte "0x"-prefixed form used by EVM chains.
	FamilyHex
	// FamilyBase58 is the base58 form used by Solana.
	FamilyBase58
)

func (f AddressFamily) String() string {
	switch f {
	case FamilyHex:
		return "hex"
	case FamilyBase58:
		return "base58"
	default:
		return "unknown"
	}
}

const (
	hexPrefix        = "0x"
	hexAddressLength = 42
)

var base58Address = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

var chainFamilies = map[string]AddressFamily{
	Ether:     FamilyHex,
	BSC:       FamilyHex,
	Polygon:   FamilyHex,
	Arbitrum:  FamilyHex,
	Optimism:  FamilyHex,
	Avalanche: FamilyHex,
	Base:      FamilyHex,
	Fantom:    FamilyHex,
	Cronos:    FamilyHex,
	Moonbeam:  FamilyHex,
	Moonriver: FamilyHex,
	Harmony:   FamilyHex,
	Celo:      FamilyHex,
	Gnosis:    FamilyHex,
	Solana:    FamilyBase58,
}

// Address validation failures. CheckAddress returns exactly one of these.
var (
	ErrEmptyAddress  = errors.New("address is empty")
	ErrHexFormat     = errors.New("address must be 0x-prefixed and 42 characters long")
	ErrBase58Format  = errors.New("address must be 32-44 base58 characters")
	ErrUnknownFormat = errors.New("address is neither hex nor base58")
)

// FamilyOf returns the address family of a chain identifier, after
// normalization.
func FamilyOf(chainID string) AddressFamily {
	return chainFamilies[Normalize(chainID)]
}

// CheckAddress validates the syntax of address for chainID and reports the
// rule that failed. An empty chainID, or a chain without a registered
// family, accepts either format. No checksum or on-chain lookup is done.
func CheckAddress(address, chainID string) error {
	if address == "" {
		return ErrEmptyAddress
	}

	family := FamilyUnknown
	if chainID != "" {
		family = FamilyOf(chainID)
	}

	switch family {
	case FamilyHex:
		if !isHexAddress(address) {
			return ErrHexFormat
		}
	case FamilyBase58:
		if !isBase58Address(address) {
			return ErrBase58Format
		}
	default:
		if !isHexAddress(address) && !isBase58Address(address) {
			return ErrUnknownFormat
		}
	}

	return nil
}

// ValidAddress reports whether CheckAddress accepts address.
func ValidAddress(address, chainID string) bool {
	return CheckAddress(address, chainID) == nil
}

// isHexAddress checks prefix and length in characters; the body is not
// inspected.
func isHexAddress(address string) bool {
	return strings.HasPrefix(address, hexPrefix) && utf8.RuneCountInString(address) == hexAddressLength
}

func isBase58Address(address string) bool {
	return base58Address.MatchString(address)
}
