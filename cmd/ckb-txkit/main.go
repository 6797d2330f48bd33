// ckb-txkit CLI - cell-model transaction construction and signing
//
// This CLI demonstrates the ckb-txkit library: assembling a transaction
// from typed entities, computing its signing hash, producing a
// recoverable secp256k1 signature and deriving a bech32m address.
//
// Example usage:
//
//	# Derive the default-lock address for a private key
//	ckb-txkit address --key <64-hex-chars> [--testnet]
//
//	# Sign a 32-byte hash with one of the supported algorithms
//	ckb-txkit sign --key <64-hex-chars> --hash <64-hex-chars> --alg ckb
//
//	# Build, sign and print a demo transaction
//	ckb-txkit demo --key <64-hex-chars>
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/cell-labs/ckb-txkit/pkg/address"
	"github.com/cell-labs/ckb-txkit/pkg/api"
	"github.com/cell-labs/ckb-txkit/pkg/crypto"
	"github.com/cell-labs/ckb-txkit/pkg/tx"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "address":
		cmdAddress()
	case "sign":
		cmdSign()
	case "demo":
		cmdDemo()
	case "version":
		cmdVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ckb-txkit - cell-model transaction construction and signing

Usage:
  ckb-txkit <command> [options]

Commands:
  address --key <hex> [--testnet]          Derive the default-lock address
  sign --key <hex> --hash <hex> [--alg a]  Sign a 32-byte hash (alg: ckb, ethereum, bitcoin)
  demo --key <hex>                         Build and sign a demo transaction
  version                                  Show version information
  help                                     Show this help message`)
}

func cmdVersion() {
	fmt.Println("ckb-txkit v0.1.0")
	fmt.Println("Transaction construction and signing for the CKB cell model")
}

// flagValue scans os.Args for "--name value".
func flagValue(name string) (string, bool) {
	for i := 2; i < len(os.Args)-1; i++ {
		if os.Args[i] == "--"+name {
			return os.Args[i+1], true
		}
	}
	return "", false
}

func flagSet(name string) bool {
	for i := 2; i < len(os.Args); i++ {
		if os.Args[i] == "--"+name {
			return true
		}
	}
	return false
}

func keyFromArgs() [32]byte {
	keyHex, ok := flagValue("key")
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: --key argument required")
		os.Exit(1)
	}
	raw, err := hex.DecodeString(keyHex)
	if err != nil || len(raw) != 32 {
		fmt.Fprintln(os.Stderr, "Error: --key must be 64 hex characters")
		os.Exit(1)
	}
	var key [32]byte
	copy(key[:], raw)
	return key
}

func algFromArgs() crypto.Algorithm {
	algName, ok := flagValue("alg")
	if !ok {
		return crypto.AlgorithmCkb
	}
	switch algName {
	case "ckb":
		return crypto.AlgorithmCkb
	case "ethereum":
		return crypto.AlgorithmEthereum
	case "bitcoin":
		return crypto.AlgorithmBitcoin
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown algorithm %q\n", algName)
		os.Exit(1)
		return 0
	}
}

func cmdAddress() {
	key := keyFromArgs()

	hrp := address.MainnetHRP
	if flagSet("testnet") {
		hrp = address.TestnetHRP
	}

	addr, err := api.AddressForKey(hrp, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to derive address: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(addr)
}

func cmdSign() {
	key := keyFromArgs()
	alg := algFromArgs()

	hashHex, ok := flagValue("hash")
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: --hash argument required")
		os.Exit(1)
	}
	raw, err := hex.DecodeString(hashHex)
	if err != nil || len(raw) != 32 {
		fmt.Fprintln(os.Stderr, "Error: --hash must be 64 hex characters")
		os.Exit(1)
	}
	var hash [32]byte
	copy(hash[:], raw)

	var signer crypto.Signer
	if err := signer.Begin(key, alg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize signer: %v\n", err)
		os.Exit(1)
	}
	defer signer.Wipe()

	sig, err := signer.Sign(hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%x\n", sig[:])
}

func cmdDemo() {
	key := keyFromArgs()

	lock, err := tx.NewScript(address.Secp256k1Blake160CodeHash, tx.HashTypeType, make([]byte, 20))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build lock script: %v\n", err)
		os.Exit(1)
	}

	proposal := &api.Proposal{
		Version: 0,
		CellDeps: []api.CellDep{
			{TxHash: [32]byte{0x01}, Index: 0, DepType: tx.DepTypeGroup},
		},
		Inputs: []api.Input{
			{TxHash: [32]byte{0x02}, Index: 0, Since: 0},
		},
		Outputs: []api.Output{
			{Capacity: 100_0000_0000, Lock: lock},
		},
	}

	txBytes, err := api.SignedTransaction(proposal, key, crypto.AlgorithmCkb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign transaction: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Serialized transaction (%d bytes):\n%x\n", len(txBytes), txBytes)
}
