// Package services implements the driving ports on top of the driven
// ones. The reader service owns the document list state machine; the
// others are thin wrappers that validate input and log what they change.
package services
