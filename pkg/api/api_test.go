// End-to-end pipeline tests: build a transaction from a proposal, derive
// the signing hash, sign, embed the signature and serialize.
package api

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cell-labs/ckb-txkit/pkg/address"
	"github.com/cell-labs/ckb-txkit/pkg/crypto"
	"github.com/cell-labs/ckb-txkit/pkg/tx"
)

var testKey = [32]byte{
	0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x00,
	0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x01,
}

func testProposal(t *testing.T) *Proposal {
	t.Helper()

	lock, err := tx.NewScript(
		address.Secp256k1Blake160CodeHash, tx.HashTypeType, make([]byte, 20))
	require.NoError(t, err)

	return &Proposal{
		Version: 0,
		CellDeps: []CellDep{
			{TxHash: [32]byte{0x01}, Index: 0, DepType: tx.DepTypeGroup},
		},
		Inputs: []Input{
			{TxHash: [32]byte{0x02}, Index: 0, Since: 0},
		},
		Outputs: []Output{
			{Capacity: 100, Lock: lock},
		},
	}
}

func TestSignedTransactionEndToEnd(t *testing.T) {
	txBytes, err := SignedTransaction(testProposal(t), testKey, crypto.AlgorithmCkb)
	require.NoError(t, err)

	require.NotEmpty(t, txBytes)
	assert.Equal(t, uint32(len(txBytes)), binary.LittleEndian.Uint32(txBytes[0:4]),
		"final transaction is self-describing")
}

func TestSignedTransactionEmbedsSignature(t *testing.T) {
	built, err := BuildTransaction(testProposal(t))
	require.NoError(t, err)

	sighash, err := crypto.SigningHash(built)
	require.NoError(t, err)

	var signer crypto.Signer
	require.NoError(t, signer.Begin(testKey, crypto.AlgorithmCkb))
	defer signer.Wipe()
	expectedSig, err := signer.Sign(sighash)
	require.NoError(t, err)

	txBytes, err := SignTransaction(built, testKey, crypto.AlgorithmCkb)
	require.NoError(t, err)

	expectedWitness, err := tx.NewWitnessArgs(expectedSig[:], nil, nil)
	require.NoError(t, err)
	assert.Equal(t, expectedWitness.Serialized(), built.Witnesses()[0])
	assert.NotEmpty(t, txBytes)
}

func TestSignedTransactionDeterministic(t *testing.T) {
	first, err := SignedTransaction(testProposal(t), testKey, crypto.AlgorithmCkb)
	require.NoError(t, err)
	second, err := SignedTransaction(testProposal(t), testKey, crypto.AlgorithmCkb)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSignedTransactionAllAlgorithms(t *testing.T) {
	for _, alg := range []crypto.Algorithm{
		crypto.AlgorithmCkb, crypto.AlgorithmEthereum, crypto.AlgorithmBitcoin,
	} {
		txBytes, err := SignedTransaction(testProposal(t), testKey, alg)
		require.NoError(t, err)
		assert.NotEmpty(t, txBytes)
	}
}

func TestBuildTransactionEnforcesInputBound(t *testing.T) {
	p := testProposal(t)
	p.Inputs = nil
	for i := 0; i <= tx.MaxInputs; i++ {
		p.Inputs = append(p.Inputs, Input{TxHash: [32]byte{byte(i)}, Index: 0})
	}

	_, err := BuildTransaction(p)
	require.Error(t, err)

	var paramErr *tx.ParameterError
	assert.ErrorAs(t, err, &paramErr)
}

func TestBuildTransactionNilProposal(t *testing.T) {
	_, err := BuildTransaction(nil)
	assert.Error(t, err)
}

func TestBuildTransactionRequiresLock(t *testing.T) {
	p := testProposal(t)
	p.Outputs[0].Lock = nil

	_, err := BuildTransaction(p)
	assert.Error(t, err)
}

func TestAddressForKey(t *testing.T) {
	addr, err := AddressForKey(address.MainnetHRP, testKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "ckb1"))

	again, err := AddressForKey(address.MainnetHRP, testKey)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
}
