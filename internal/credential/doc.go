// Package credential turns passwords into stored hashes and back.
//
// The default SHA384Hasher reproduces the legacy scheme byte for byte:
//
//	base64(SHA-384(normalizedUserName + ":" + password + ":" + securityStamp))
//
// The security stamp is the only per user salt, so rotating it detaches every
// derived secret from the account. The scheme is a single fast hash without
// iteration count or memory hardness. Argon2Hasher binds the same input into an
// argon2id hash and should be preferred for new deployments (config key
// identity.hasher = "argon2id"); existing hashes keep verifying only with the
// hasher that produced them.
package credential
