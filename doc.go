// Package clientstore is a client-side key/value store that puts structured
// storage areas and cookies behind one interface.
//
// A Store picks its backend once, at construction. Structured storage keeps
// each value inside a small JSON envelope carrying an optional absolute
// expiry; reads ignore the expiry and Expire sweeps the whole area to remove
// what is due. The cookie backend writes plain cookies and leaves expiry to
// the cookie jar, so Expire is a no-op there. Package sweeper runs Expire on
// the schedule in config.SweepConfig.
//
//	s := clientstore.New(config.Options{ExpirationMultiplier: 1000}, storage.Environment{
//		Session: storage.NewMemoryArea(),
//		Cookies: storage.NewMemoryJar(),
//	})
//	_ = s.SetWithExpiration("token", "abc", 30) // 30 seconds
//	v, ok := s.Get("token")
package clientstore
