// Package dbus connects pinenotectl to the PineNote system services over
// D-Bus. It provides the transport handle (Bus), a bound remote object used
// by the typed proxies, and an in-process Emulator that exports the same
// org.pinenote.Ebc1 and org.pinenote.Misc1 interfaces for development on
// machines without the real services.
package dbus
