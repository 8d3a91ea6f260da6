/*
Vesting contract is a lockup vault for grants of MPT ledger tokens.

Each symbol carries a schedule of an airdrop time and a lockup duration.
Grants are added per account while the vault is stocked with tokens from
the ledger. A withdrawal pays the whole credit out and deletes the
grant, so it can happen only once and only after the lockup has elapsed.
The schedule can be reconfigured by relisting the symbol, which restarts
the clock but keeps the accumulated credit.

# Contract notifications

Grant notification. Produced when a member is granted credit.

	Grant:
	  - name: symbol
	    type: String
	  - name: account
	    type: Hash160
	  - name: credit
	    type: Integer

Withdraw notification. Produced when a grant has been paid out.

	Withdraw:
	  - name: symbol
	    type: String
	  - name: account
	    type: Hash160
	  - name: credit
	    type: Integer
*/
package vesting
