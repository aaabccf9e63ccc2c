// file: service/password_hasher_test.go

package service

import (
	"go-auth-api/common"
	"go-auth-api/logger"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// testHasher uses the minimum bcrypt cost so the suite stays fast.
func testHasher() *PasswordHasher {
	return NewPasswordHasher(4)
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := testHasher()
	password := "mySecretPassword123"

	record, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEqual(t, password, record, "hash record should not equal the plain password")

	// The record is self-describing: two hashes of the same password use
	// different salts and still both verify.
	record2, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEqual(t, record, record2)

	for _, rec := range []string{record, record2} {
		match, err := hasher.Verify(password, rec)
		assert.NoError(t, err)
		assert.True(t, match)
	}

	match, err := hasher.Verify("notMyPassword", record)
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordHasher_CostUpgradeKeepsOldRecords(t *testing.T) {
	old := NewPasswordHasher(4)
	record, err := old.Hash("legacy-password")
	assert.NoError(t, err)

	// A hasher configured with a higher work factor still verifies records
	// produced under the old one.
	upgraded := NewPasswordHasher(6)
	match, err := upgraded.Verify("legacy-password", record)
	assert.NoError(t, err)
	assert.True(t, match)
}

func TestPasswordHasher_MalformedRecord(t *testing.T) {
	hasher := testHasher()

	match, err := hasher.Verify("anything", "this-is-not-a-bcrypt-record")
	assert.False(t, match)
	assert.ErrorIs(t, err, common.ErrHashing)
}

func TestNewPasswordHasher_ClampsInvalidCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of
	// producing a hasher that fails on every call.
	hasher := NewPasswordHasher(100)
	record, err := hasher.Hash("pw-with-default-cost")
	assert.NoError(t, err)

	match, err := hasher.Verify("pw-with-default-cost", record)
	assert.NoError(t, err)
	assert.True(t, match)
}
