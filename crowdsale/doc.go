/*
Crowdsale contract sells and buys back tokens of the MPT ledger for GAS.

Each listed symbol carries four ordered window bounds splitting its
lifetime into presale, sale, prebuyback, buyback and closed phases. The
phase is never stored: it is derived from the block clock on every call.

During the sale buyers send GAS through the NEP-17 transfer data channel
and receive tokens at the listing rate. The GAS stays locked in the
contract: every bought token is tracked as untouched for its buyer and
can be sent back during the buyback window for a full refund at the same
rate. Funds unlock for the listing owner only when bought tokens leave
the buyback pool, either by an explicit resale (observed through the
token ledger's spend check) or simply by being spent.

The token issuer registers this contract as the sale guard of the listed
symbols on the ledger side, so the ledger consults CheckTransfer before
every transfer of a listed symbol and invokes OnTokenTransfer for
transfers this contract is a party of.

# Contract notifications

Buy notification. Produced when a sale purchase has been served.

	Buy:
	  - name: buyer
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: payment
	    type: Integer
	  - name: bought
	    type: Integer

Return notification. Produced when a buyback return has been refunded.

	Return:
	  - name: buyer
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer
	  - name: refund
	    type: Integer

Unlock notification. Produced when a resale of untouched tokens releases
part of the locked funds to the listing owner.

	Unlock:
	  - name: symbol
	    type: String
	  - name: buyer
	    type: Hash160
	  - name: spent
	    type: Integer
	  - name: unlocked
	    type: Integer

ClaimFunds notification. Produced when the listing owner collects the
unlocked funds.

	ClaimFunds:
	  - name: symbol
	    type: String
	  - name: paid
	    type: Integer
*/
package crowdsale
