/*
Package oracle implements Oracle contract which keeps the set of trusted
reporting nodes and the occupancy readings they submit for parking spots.

Every node has a reputation within [0, 1000]. It starts at 500, grows by 1
with every accepted reading and drops by 10 with every softly rejected one.
A node whose reputation drops below 100 is deactivated and can't submit
readings until the owner adds it again.

Readings are checked in the following order: reporter authorization, spot
ID, per-spot cooldown of 30 seconds, confidence within [70, 100], content
hash replay, sensor type and hash presence. Any of these failures aborts the
transaction. A reading changing the occupancy of the spot must have a
confidence of at least 80, otherwise it's rejected without aborting.

# Contract notifications

SensorDataUpdated notification. This notification is produced when a
reading is accepted.

	SensorDataUpdated
	  - name: spotID
	    type: Integer
	  - name: occupied
	    type: Boolean
	  - name: confidence
	    type: Integer
	  - name: reporter
	    type: Hash160
	  - name: sensorType
	    type: String

SpotOccupancyDetected notification. This notification is produced when the
first reading for the spot is accepted or an accepted reading changes the
occupancy of the spot.

	SpotOccupancyDetected
	  - name: spotID
	    type: Integer
	  - name: occupied
	    type: Boolean
	  - name: reporter
	    type: Hash160

DataValidationFailed notification. This notification is produced when a
reading is rejected softly.

	DataValidationFailed
	  - name: reporter
	    type: Hash160
	  - name: spotID
	    type: Integer
	  - name: reason
	    type: String

OracleNodeAdded notification.

	OracleNodeAdded
	  - name: node
	    type: Hash160
	  - name: label
	    type: String

OracleNodeRemoved notification. This notification is produced when the
owner removes the node or its reputation drops below 100.

	OracleNodeRemoved
	  - name: node
	    type: Hash160

OracleNodeUpdated notification. This notification is produced on every
reputation change.

	OracleNodeUpdated
	  - name: node
	    type: Hash160
	  - name: reputation
	    type: Integer

Paused and Unpaused notifications have no parameters.
*/
package oracle

/*
Contract storage model.

Current conventions:
 <index>, <pos>, <spot>, <slot>: 4-byte little-endian unsigned integer
 <account>: 20-byte script hash

# Summary
Key-value storage format:
 - 'owner' -> interop.Hash160
   account managing the nodes
 - 'paused' -> bool
   set while readings are not accepted
 - 'nodeCount' -> int
   number of node records
 - 'activeCount' -> int
   number of active nodes
 - 'N<index>' -> std.Serialize(Node)
   node record
 - 'i<account>' -> int
   index of the node record
 - 'A<pos>' -> int
   index of the node at the position of the active set
 - 'L<spot>' -> std.Serialize(Reading)
   latest accepted reading
 - 'h<spot><slot>' -> std.Serialize(Reading)
   reading history ring of 100 slots
 - 'q<spot>' -> int
   number of readings ever accepted for the spot, the next slot is this
   value modulo 100
 - 'x<hash>' -> bool
   content hashes of accepted readings
*/
