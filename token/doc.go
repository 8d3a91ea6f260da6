/*
Token contract is the authoritative balance ledger of the MPT economy.

It stores one SupplyRecord per ticker symbol and one BalanceEntry per
(symbol, owner) pair. The circulating supply of a symbol always equals
the sum of its balance entries: Issue and Retire are the only operations
changing both, Transfer only moves value between entries.

Every balance entry carries a claimed flag implementing the deferred
resource-claim pattern: entries credited by the issuer are paid for by
the issuer until the owner claims them (explicitly via Claim or
implicitly by the first transfer touching the entry). Unclaimed entries
can be taken back by the issuer with Recover; claimed ones never can.

Transfers consult a per-symbol sale guard contract (the crowdsale) before
the sender's balance is touched and deliver a synchronous onTokenTransfer
hook to every party of the transfer that is a deployed contract. A panic
in the guard or in a hook aborts the whole transfer, which is the only
way a downstream contract can veto an otherwise valid ledger operation.

# Contract notifications

Transfer notification. Produced by every committed transfer, including
the internal forwarding one of Issue.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer

Issue notification. Produced after tokens have been minted.

	Issue:
	  - name: to
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer

Retire notification. Produced after tokens have been burned from the
issuer's balance.

	Retire:
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer

Recover notification. Produced when the issuer claws back an unclaimed
balance.

	Recover:
	  - name: owner
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer
*/
package token
