// Package services implements the driving ports: the synchronization
// coordinator that owns the live document, the project service, and the
// read-only document path. Services depend only on domain types, the
// driven ports and the pure outline/anchors packages.
package services
