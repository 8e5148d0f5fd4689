// Package reliefpkg contains the relief Package aggregate: the fulfillment
// vehicle created against an approved request. A package is assembled from
// stock reserved at a source warehouse (Pending), handed to transport
// (Dispatched), and closed once its destination records the intake
// (Completed).
//
// Creating a package line reserves stock on the source inventory; dispatch is
// a pure status transition with a timestamp and moves no quantities.
package reliefpkg
