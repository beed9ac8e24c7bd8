package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// AddressCheck is the on-chain state of one recorded address
type AddressCheck struct {
	Key     models.RecordKey
	Address string
	Exists  bool
	Reason  string
}

// VerifyAddressesResult lists a check for every owned key present in the record
type VerifyAddressesResult struct {
	Path   string
	Checks []AddressCheck
}

// Missing returns the checks whose address has no code
func (r *VerifyAddressesResult) Missing() []AddressCheck {
	var out []AddressCheck
	for _, c := range r.Checks {
		if !c.Exists {
			out = append(out, c)
		}
	}
	return out
}

// VerifyAddresses checks that every address deploy wrote still has code on
// the configured network
type VerifyAddresses struct {
	records AddressRecordRepository
	checker CodeChecker
}

// NewVerifyAddresses creates a new VerifyAddresses use case
func NewVerifyAddresses(records AddressRecordRepository, checker CodeChecker) *VerifyAddresses {
	return &VerifyAddresses{records: records, checker: checker}
}

// Run checks each owned key present in the record. Passthrough keys are ignored.
func (uc *VerifyAddresses) Run(ctx context.Context) (*VerifyAddressesResult, error) {
	record, err := uc.records.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &VerifyAddressesResult{Path: uc.records.GetPath()}
	for _, key := range models.RecordKeys {
		value, ok := record.Known[key]
		if !ok {
			continue
		}

		check := AddressCheck{Key: key, Address: value}
		if !common.IsHexAddress(value) {
			check.Reason = domain.ErrInvalidAddress.Error()
			result.Checks = append(result.Checks, check)
			continue
		}

		check.Exists, check.Reason, err = uc.checker.CheckDeploymentExists(ctx, common.HexToAddress(value))
		if err != nil {
			return nil, err
		}
		result.Checks = append(result.Checks, check)
	}
	return result, nil
}
