/*
Deploy command deploys the MPT contracts to a Neo network.

The command reads compilation artifacts from the given directory, opens
the first account of the given wallet and deploys the token, crowdsale
and vesting contracts in order, wiring the latter two to the token
ledger. The wallet account becomes the owner of all three contracts.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/metpack/mpt-contract/contracts"
	"github.com/metpack/mpt-contract/deploy"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer wallet (its first account is used)")
	walletPassword := flag.String("password", "", "Password of the deployer wallet account")
	contractsDir := flag.String("contracts", "", "Directory with compiled contracts")

	flag.Parse()

	if *neoRPCEndpoint == "" || *walletPath == "" || *contractsDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*neoRPCEndpoint, *walletPath, *walletPassword, *contractsDir); err != nil {
		log.Fatal(err)
	}
}

func run(endpoint, walletPath, password, contractsDir string) error {
	l, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer l.Sync()

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open wallet: %w", err)
	}

	if len(w.Accounts) == 0 {
		return fmt.Errorf("wallet %s has no accounts", walletPath)
	}

	acc := w.Accounts[0]
	if err := acc.Decrypt(password, w.Scrypt); err != nil {
		return fmt.Errorf("unlock wallet account: %w", err)
	}

	cs, err := contracts.GetAll(contractsDir)
	if err != nil {
		return fmt.Errorf("read contracts: %w", err)
	}

	tokenPrm, crowdsalePrm, vestingPrm, err := deploy.Contracts(cs)
	if err != nil {
		return err
	}

	ctx := context.Background()

	c, err := rpcclient.New(ctx, endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}
	defer c.Close()

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		return fmt.Errorf("init actor: %w", err)
	}

	res, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:            l,
		Actor:             act,
		Owner:             acc.ScriptHash(),
		TokenContract:     tokenPrm,
		CrowdsaleContract: crowdsalePrm,
		VestingContract:   vestingPrm,
	})
	if err != nil {
		return err
	}

	fmt.Println("token:    ", res.Token.StringLE())
	fmt.Println("crowdsale:", res.Crowdsale.StringLE())
	fmt.Println("vesting:  ", res.Vesting.StringLE())

	return nil
}
