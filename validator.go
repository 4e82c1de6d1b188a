package axiom

var validatorLog = componentLogger("validator")

// ValidateWorkspace runs the dwindle tree invariant checks for w and logs
// any violation found. It never mutates the tree — validation is
// observational only: a broken invariant is a bug to investigate, not
// something the validator attempts to repair.
func ValidateWorkspace(w *Workspace) {
	if w == nil || w.Layout == nil || w.Layout.Tree == nil {
		return
	}
	for _, problem := range w.Layout.Tree.Validate() {
		validatorLog.WithFields(map[string]any{
			"workspace": w.Name,
			"problem":   problem,
		}).Error("dwindle tree invariant violated")
	}
	checkTiledCountMatchesLeaves(w)
}

// checkTiledCountMatchesLeaves warns if the workspace's tracked tiled
// window count diverges from the number of leaves actually present in its
// tree, which would indicate a bookkeeping bug in insert/remove.
func checkTiledCountMatchesLeaves(w *Workspace) {
	leaves := w.Layout.Tree.leavesInOrder()
	if len(leaves) != w.TiledCount() {
		validatorLog.WithFields(map[string]any{
			"workspace":   w.Name,
			"tree_leaves": len(leaves),
			"tiled_count": w.TiledCount(),
		}).Warn("tiled window count diverges from tree leaf count")
	}
}
