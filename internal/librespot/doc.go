// Package librespot adapts github.com/librespot-org/librespot-golang to the
// spotify.Session contract.
//
// Login, the audio key exchange and stream decryption are done by the
// library; this package only maps its protobuf metadata onto the spotify
// package types.
//
//	session, err := librespot.Connect(ctx, spotify.Credentials{Username: u, Password: p}, "spotify-dl")
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
package librespot
