package oracle

import (
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/common"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/contracts/oracle/oracleconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Node is a reporting account allowed to submit readings while active.
	Node struct {
		Address      interop.Hash160
		Active       bool
		Reputation   int
		TotalUpdates int
		LastUpdate   int
		Label        string
		// Index is the stable position of the node record.
		Index int
		// ActivePos is the position in the active node set, -1 for
		// inactive nodes.
		ActivePos int
	}

	// Reading is an accepted occupancy report for a spot.
	Reading struct {
		SpotID     int
		Occupied   bool
		Confidence int
		Timestamp  int
		SensorType string
		Hash       []byte
		Reporter   interop.Hash160
	}
)

const (
	ownerKey       = "owner"
	pausedKey      = "paused"
	nodeCountKey   = "nodeCount"
	activeCountKey = "activeCount"

	nodePrefix      = 'N'
	nodeIndexPrefix = 'i'
	activePrefix    = 'A'
	latestPrefix    = 'L'
	historyPrefix   = 'h'
	appendedPrefix  = 'q'
	processedPrefix = 'x'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	storage.Put(ctx, ownerKey, args.owner)

	runtime.Log("oracle contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic(common.ErrCommitteeOnly)
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("oracle contract updated")
}

// Owner returns the account managing the oracle nodes.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

// Paused returns true if readings are not accepted.
func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return common.GetBool(ctx, pausedKey)
}

// Pause stops accepting readings.
func Pause() {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if common.GetBool(ctx, pausedKey) {
		panic(common.ErrPaused)
	}

	storage.Put(ctx, pausedKey, true)
	runtime.Notify("Paused")
}

// Unpause resumes accepting readings.
func Unpause() {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if !common.GetBool(ctx, pausedKey) {
		panic(common.ErrNotPaused)
	}

	storage.Delete(ctx, pausedKey)
	runtime.Notify("Unpaused")
}

// AddNode authorizes the account to submit readings with initial reputation.
// A removed node can be added again, it keeps its counters but starts with
// initial reputation.
func AddNode(address interop.Hash160, label string) {
	ctx := storage.GetContext()
	checkOwner(ctx)
	common.CheckAddress(address)

	if len(label) == 0 {
		panic(common.ErrEmptyLabel)
	}

	node, ok := getNode(ctx, address)
	if ok {
		if node.Active {
			panic(common.ErrNodeAlreadyActive)
		}
	} else {
		index := common.NextID(ctx, nodeCountKey) - 1
		node = Node{
			Address:   address,
			Index:     index,
			ActivePos: -1,
		}
		storage.Put(ctx, append([]byte{nodeIndexPrefix}, address...), index)
	}

	node.Label = label
	node.Reputation = oracleconst.InitialReputation
	activate(ctx, node)

	runtime.Notify("OracleNodeAdded", address, label)
}

// RemoveNode revokes the node authorization. The record is kept.
func RemoveNode(address interop.Hash160) {
	ctx := storage.GetContext()
	checkOwner(ctx)

	node := mustGetNode(ctx, address)
	if !node.Active {
		panic(common.ErrNodeNotActive)
	}

	deactivate(ctx, node)
}

// SetReputation overrides the node reputation. Value must be within
// [0, 1000]. A value below 100 deactivates the node.
func SetReputation(address interop.Hash160, value int) {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if value < 0 || value > oracleconst.MaxReputation {
		panic(common.ErrReputationRange)
	}

	node := mustGetNode(ctx, address)
	setReputation(ctx, node, value)
}

// GetNode returns the node record.
func GetNode(address interop.Hash160) Node {
	ctx := storage.GetReadOnlyContext()
	return mustGetNode(ctx, address)
}

// IsActiveNode returns true if the account can submit readings.
func IsActiveNode(address interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	node, ok := getNode(ctx, address)
	return ok && node.Active
}

// GetReputation returns the node reputation.
func GetReputation(address interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return mustGetNode(ctx, address).Reputation
}

// ActiveNodes returns addresses of all active nodes.
func ActiveNodes() []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()

	result := []interop.Hash160{}

	count := common.GetInt(ctx, activeCountKey)
	for i := 0; i < count; i++ { //nolint:intrange // Not supported by NeoGo
		index := storage.Get(ctx, common.IDKey(activePrefix, i)).(int)
		result = append(result, nodeAt(ctx, index).Address)
	}

	return result
}

// ActiveNodeCount returns the number of active nodes.
func ActiveNodeCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, activeCountKey)
}

// NodeCount returns the number of nodes ever added.
func NodeCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, nodeCountKey)
}

// IterateNodes returns an iterator over all node records, active or not.
func IterateNodes() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{nodePrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// SubmitReading processes the occupancy report of the node.
//
// Authorization, policy and malformed input failures abort the transaction.
// A reading which flips the occupancy of the spot with confidence below 80
// is rejected softly: the node is penalized, DataValidationFailed is thrown
// and false is returned. An accepted reading is stored, the node is rewarded
// and true is returned.
func SubmitReading(reporter interop.Hash160, spotID int, occupied bool, confidence int, sensorType string, hash []byte) bool {
	ctx := storage.GetContext()
	if common.GetBool(ctx, pausedKey) {
		panic(common.ErrPaused)
	}

	common.CheckWitness(reporter)

	node, ok := getNode(ctx, reporter)
	if !ok || !node.Active {
		panic(common.ErrNotActiveNode)
	}

	if spotID <= 0 {
		panic(common.ErrInvalidSpotID)
	}

	now := common.Now()

	latest, hasLatest := getLatest(ctx, spotID)
	if hasLatest && now < latest.Timestamp+oracleconst.Cooldown {
		panic(common.ErrCooldown)
	}

	if confidence < oracleconst.MinConfidence || confidence > oracleconst.MaxConfidence {
		panic(common.ErrLowConfidence)
	}

	processedKey := append([]byte{processedPrefix}, hash...)
	if storage.Get(ctx, processedKey) != nil {
		panic(common.ErrReplay)
	}

	if len(sensorType) == 0 {
		panic(common.ErrEmptySensorType)
	}

	if len(hash) == 0 {
		panic(common.ErrEmptyHash)
	}

	if len(hash) > oracleconst.MaxHashLength {
		panic(common.ErrHashTooLong)
	}

	flipped := hasLatest && latest.Occupied != occupied
	if flipped && confidence < oracleconst.FlipConfidence {
		runtime.Notify("DataValidationFailed", reporter, spotID, oracleconst.FlipRejectReason)
		setReputation(ctx, node, node.Reputation-oracleconst.PenaltyStep)
		return false
	}

	reading := Reading{
		SpotID:     spotID,
		Occupied:   occupied,
		Confidence: confidence,
		Timestamp:  now,
		SensorType: sensorType,
		Hash:       hash,
		Reporter:   reporter,
	}

	pushHistory(ctx, reading)
	storage.Put(ctx, processedKey, true)
	common.SetSerialized(ctx, common.IDKey(latestPrefix, spotID), reading)

	node.TotalUpdates += 1
	node.LastUpdate = now
	setReputation(ctx, node, node.Reputation+oracleconst.RewardStep)

	runtime.Notify("SensorDataUpdated", spotID, occupied, confidence, reporter, sensorType)
	if !hasLatest || flipped {
		runtime.Notify("SpotOccupancyDetected", spotID, occupied, reporter)
	}

	return true
}

// GetLatestReading returns the last accepted reading for the spot.
func GetLatestReading(spotID int) Reading {
	ctx := storage.GetReadOnlyContext()

	reading, ok := getLatest(ctx, spotID)
	if !ok {
		panic(common.ErrReadingNotFound)
	}

	return reading
}

// GetReadingHistory returns up to 100 last accepted readings for the spot,
// oldest first.
func GetReadingHistory(spotID int) []Reading {
	ctx := storage.GetReadOnlyContext()

	result := []Reading{}

	appended := common.GetInt(ctx, common.IDKey(appendedPrefix, spotID))
	first := 0
	size := appended
	if appended > oracleconst.HistoryCap {
		first = appended % oracleconst.HistoryCap
		size = oracleconst.HistoryCap
	}

	for i := 0; i < size; i++ { //nolint:intrange // Not supported by NeoGo
		slot := (first + i) % oracleconst.HistoryCap
		data := storage.Get(ctx, historyKey(spotID, slot))
		result = append(result, std.Deserialize(data.([]byte)).(Reading))
	}

	return result
}

// HistorySize returns the number of readings kept for the spot.
func HistorySize(spotID int) int {
	ctx := storage.GetReadOnlyContext()

	appended := common.GetInt(ctx, common.IDKey(appendedPrefix, spotID))
	if appended > oracleconst.HistoryCap {
		return oracleconst.HistoryCap
	}

	return appended
}

// IsHashProcessed returns true if a reading with the given content hash was
// accepted for any spot.
func IsHashProcessed(hash []byte) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, append([]byte{processedPrefix}, hash...)) != nil
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkOwner(ctx storage.Context) {
	common.CheckOwnerWitness(storage.Get(ctx, ownerKey).(interop.Hash160))
}

// setReputation clamps the value into [0, 1000], saves the node and
// deactivates it if the value is below 100.
func setReputation(ctx storage.Context, node Node, value int) {
	if value < 0 {
		value = 0
	} else if value > oracleconst.MaxReputation {
		value = oracleconst.MaxReputation
	}

	node.Reputation = value
	putNode(ctx, node)

	runtime.Notify("OracleNodeUpdated", node.Address, value)

	if node.Active && value < oracleconst.MinActiveReputation {
		deactivate(ctx, node)
	}
}

// activate appends the node to the active set.
func activate(ctx storage.Context, node Node) {
	pos := common.GetInt(ctx, activeCountKey)

	storage.Put(ctx, common.IDKey(activePrefix, pos), node.Index)
	storage.Put(ctx, activeCountKey, pos+1)

	node.Active = true
	node.ActivePos = pos
	putNode(ctx, node)
}

// deactivate swap-removes the node from the active set.
func deactivate(ctx storage.Context, node Node) {
	last := common.GetInt(ctx, activeCountKey) - 1

	if node.ActivePos != last {
		lastIndex := storage.Get(ctx, common.IDKey(activePrefix, last)).(int)
		moved := nodeAt(ctx, lastIndex)
		moved.ActivePos = node.ActivePos
		putNode(ctx, moved)

		storage.Put(ctx, common.IDKey(activePrefix, node.ActivePos), lastIndex)
	}

	storage.Delete(ctx, common.IDKey(activePrefix, last))
	storage.Put(ctx, activeCountKey, last)

	node.Active = false
	node.ActivePos = -1
	putNode(ctx, node)

	runtime.Notify("OracleNodeRemoved", node.Address)
}

// pushHistory writes the reading into the ring of the spot overwriting the
// oldest one when the ring is full.
func pushHistory(ctx storage.Context, reading Reading) {
	countKey := common.IDKey(appendedPrefix, reading.SpotID)
	appended := common.GetInt(ctx, countKey)

	slot := appended % oracleconst.HistoryCap
	common.SetSerialized(ctx, historyKey(reading.SpotID, slot), reading)
	storage.Put(ctx, countKey, appended+1)
}

func historyKey(spotID, slot int) []byte {
	return append(common.IDKey(historyPrefix, spotID), common.FixedID(slot)...)
}

func getLatest(ctx storage.Context, spotID int) (Reading, bool) {
	data := storage.Get(ctx, common.IDKey(latestPrefix, spotID))
	if data == nil {
		return Reading{}, false
	}

	return std.Deserialize(data.([]byte)).(Reading), true
}

func getNode(ctx storage.Context, address interop.Hash160) (Node, bool) {
	data := storage.Get(ctx, append([]byte{nodeIndexPrefix}, address...))
	if data == nil {
		return Node{}, false
	}

	return nodeAt(ctx, data.(int)), true
}

func mustGetNode(ctx storage.Context, address interop.Hash160) Node {
	node, ok := getNode(ctx, address)
	if !ok {
		panic(common.ErrNodeNotFound)
	}

	return node
}

func nodeAt(ctx storage.Context, index int) Node {
	data := storage.Get(ctx, common.IDKey(nodePrefix, index))
	return std.Deserialize(data.([]byte)).(Node)
}

func putNode(ctx storage.Context, node Node) {
	common.SetSerialized(ctx, common.IDKey(nodePrefix, node.Index), node)
}
