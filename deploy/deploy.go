/*
Package deploy provides the MPT contract deployment procedure.
*/
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/metpack/mpt-contract/contracts"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

// ContractPrm groups deployment parameters of a single contract.
type ContractPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the MPT deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Transaction sender, must be backed by an unlocked account.
	Actor *actor.Actor

	// Account set as the owner of all three contracts.
	Owner util.Uint160

	TokenContract     ContractPrm
	CrowdsaleContract ContractPrm
	VestingContract   ContractPrm
}

// Result groups script hashes of the deployed contracts.
type Result struct {
	Token     util.Uint160
	Crowdsale util.Uint160
	Vesting   util.Uint160
}

// Deploy deploys the token, crowdsale and vesting contracts to the Neo
// network served by prm.Actor and wires the crowdsale and the vesting
// vault to the token ledger. The token contract hash is predicted from
// the sender before anything is sent, so the hook contracts receive it
// as a deployment argument.
//
// Deploy waits for every transaction to persist and aborts on the first
// failure, deployed contracts are not rolled back.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	mgmt := management.New(prm.Actor)
	sender := prm.Actor.Sender()

	res.Token = state.CreateContractHash(sender, prm.TokenContract.NEF.Checksum, prm.TokenContract.Manifest.Name)

	prm.Logger.Info("deploying token contract",
		zap.Stringer("hash", res.Token))

	err := deployContract(ctx, prm.Actor, mgmt, prm.TokenContract, []any{prm.Owner})
	if err != nil {
		return res, fmt.Errorf("deploy token contract: %w", err)
	}

	res.Crowdsale = state.CreateContractHash(sender, prm.CrowdsaleContract.NEF.Checksum, prm.CrowdsaleContract.Manifest.Name)

	prm.Logger.Info("deploying crowdsale contract",
		zap.Stringer("hash", res.Crowdsale),
		zap.Stringer("token", res.Token))

	err = deployContract(ctx, prm.Actor, mgmt, prm.CrowdsaleContract, []any{prm.Owner, res.Token})
	if err != nil {
		return res, fmt.Errorf("deploy crowdsale contract: %w", err)
	}

	res.Vesting = state.CreateContractHash(sender, prm.VestingContract.NEF.Checksum, prm.VestingContract.Manifest.Name)

	prm.Logger.Info("deploying vesting contract",
		zap.Stringer("hash", res.Vesting),
		zap.Stringer("token", res.Token))

	err = deployContract(ctx, prm.Actor, mgmt, prm.VestingContract, []any{prm.Owner, res.Token})
	if err != nil {
		return res, fmt.Errorf("deploy vesting contract: %w", err)
	}

	prm.Logger.Info("all contracts deployed")

	return res, nil
}

// Contracts converts compilation artifacts read by the contracts package
// into deployment parameters in the same order.
func Contracts(cs []contracts.Contract) (ContractPrm, ContractPrm, ContractPrm, error) {
	if len(cs) != 3 {
		return ContractPrm{}, ContractPrm{}, ContractPrm{}, errors.New("unexpected number of contracts")
	}

	return ContractPrm{NEF: cs[0].NEF, Manifest: cs[0].Manifest},
		ContractPrm{NEF: cs[1].NEF, Manifest: cs[1].Manifest},
		ContractPrm{NEF: cs[2].NEF, Manifest: cs[2].Manifest}, nil
}

func deployContract(ctx context.Context, act *actor.Actor, mgmt *management.Contract, prm ContractPrm, data []any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	txHash, vub, err := mgmt.Deploy(&prm.NEF, &prm.Manifest, data)
	if err != nil {
		return fmt.Errorf("send deploy transaction: %w", err)
	}

	_, err = act.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for deploy transaction %s: %w", txHash.StringLE(), err)
	}

	return nil
}
