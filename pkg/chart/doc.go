// Package chart defines the serialization format for flow graphs.
//
// The runtime representation ([flow.Graph]) holds mutual node/link
// references; Chart flattens those into ID references so the structure can
// travel as JSON (files, HTTP) or BSON (the Mongo cache backend) and be
// rebuilt losslessly with [ToFlow].
package chart
