/*
Package parking implements Parking contract which keeps the registry of
parking spots, their reservations and the GAS escrow behind them.

A reservation goes through the following states:

	Active -> (StartReservation) -> Active, started -> (CompleteReservation) -> Completed
	Active, not started -> (CancelReservation) -> Cancelled
	Active, not started, window passed -> (ExpireReservation) -> Expired

Reserve pulls the payment from the requester and returns the surplus in the
same transaction. Settlement, cancellation and expiration return the unused
part of the escrow. Every GAS transfer is made after the bookkeeping of the
operation is written, operations moving GAS can't be entered recursively.

# Contract notifications

SpotCreated notification. This notification is produced when the owner
registers a new spot.

	SpotCreated
	  - name: spotID
	    type: Integer
	  - name: location
	    type: String
	  - name: hourlyRate
	    type: Integer

SpotStatusChanged notification. This notification is produced when the owner
activates or deactivates a spot.

	SpotStatusChanged
	  - name: spotID
	    type: Integer
	  - name: active
	    type: Boolean

ReservationCreated notification. This notification is produced when a spot
is reserved and paid.

	ReservationCreated
	  - name: reservationID
	    type: Integer
	  - name: requester
	    type: Hash160
	  - name: spotID
	    type: Integer
	  - name: start
	    type: Integer
	  - name: end
	    type: Integer
	  - name: cost
	    type: Integer

ReservationStarted notification. This notification is produced when the
reporter confirms the vehicle arrival.

	ReservationStarted
	  - name: reservationID
	    type: Integer
	  - name: actualStart
	    type: Integer

ReservationCompleted notification. This notification is produced when the
reporter confirms the vehicle departure and the reservation is settled.

	ReservationCompleted
	  - name: reservationID
	    type: Integer
	  - name: actualEnd
	    type: Integer
	  - name: actualCost
	    type: Integer
	  - name: refund
	    type: Integer

ReservationCancelled notification. This notification is produced when the
requester cancels a reservation before the start.

	ReservationCancelled
	  - name: reservationID
	    type: Integer
	  - name: refund
	    type: Integer

ReservationExpired notification. This notification is produced when the
reporter closes a reservation which was never started.

	ReservationExpired
	  - name: reservationID
	    type: Integer
	  - name: refund
	    type: Integer

SpotOccupancyChanged notification. This notification is produced when a
reservation is started or completed.

	SpotOccupancyChanged
	  - name: spotID
	    type: Integer
	  - name: occupied
	    type: Boolean
	  - name: occupant
	    type: Hash160

FeePercentChanged notification.

	FeePercentChanged
	  - name: oldPercent
	    type: Integer
	  - name: newPercent
	    type: Integer

ReporterChanged notification.

	ReporterChanged
	  - name: reporter
	    type: Hash160

Paused and Unpaused notifications have no parameters.

PlatformWithdrawal notification. This notification is produced when the owner
withdraws the accrued platform GAS.

	PlatformWithdrawal
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package parking

/*
Contract storage model.

Current conventions:
 <id>: 4-byte little-endian unsigned integer
 <account>: 20-byte script hash

# Summary
Key-value storage format:
 - 'owner' -> interop.Hash160
   account managing spots and settings
 - 'reporter' -> interop.Hash160
   account starting, completing and expiring reservations
 - 'feePercent' -> int
   platform fee in percents
 - 'paused' -> bool
   set while reservation operations are suspended
 - 'platformEarnings' -> int
   withdrawable platform GAS
 - 'settlementFees' -> int
   lifetime fees of completed reservations
 - 'penalties' -> int
   lifetime penalties of cancelled and expired reservations
 - 'spotCounter' -> int
   last issued spot ID
 - 'reservationCounter' -> int
   last issued reservation ID
 - 'S<id>' -> std.Serialize(Spot)
   spot by ID
 - 'R<id>' -> std.Serialize(Reservation)
   reservation by ID
 - 'u<account><id>' -> int
   reservation IDs of the requester
 - 'x<id><id>' -> int
   reservation IDs of the spot

# Conservation
Sum of spot earnings plus 'settlementFees' equals the sum of actual costs of
completed reservations. 'platformEarnings' is 'settlementFees' plus
'penalties' minus withdrawn GAS.
*/
