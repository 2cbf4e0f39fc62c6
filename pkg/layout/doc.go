// Package layout assigns geometry and identifiers to circuit trees.
//
// [Place] walks a circuit and gives every node a bounding box, evenly slotted
// input/output terminal coordinates, and an integer id. Ids are assigned in
// pre-order, a node before its children and the whole left subtree before
// the right, which makes a node's id the minimum in its subtree and every id in
// the right subtree larger than every id in the left. [ByID] exploits that
// ordering to find a node in O(depth) without a full traversal.
//
// Geometry is unitless: one wire slot is one unit tall, and composition adds
// a fixed gap between children. [Translate] and [Scale] are uniform pure
// transforms used to normalize a diagram to a canvas origin and zoom level;
// both return new trees and compose.
package layout
