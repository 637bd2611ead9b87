// Package pinenote provides typed proxies for the PineNote display
// controller (EBC) and miscellaneous settings services.
//
// Every getter issues a fresh remote call and every setter a fresh remote
// write; nothing is cached. Toggle requests are resolved by reading the
// current value and writing its negation, which is not atomic against other
// writers. Performance mode is written as two separate remote calls with no
// rollback if the second fails.
package pinenote
