// Package cryptoalg defines the core interfaces and structures of the RSA-OAEP engine: key material,
// the key engine, the OAEP codec and the file framer contracts, and the error taxonomy shared by all of them.
package cryptoalg
