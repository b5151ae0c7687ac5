package logging

import "go.uber.org/zap"

// Field constructors for the identifiers that show up across the service, so
// the same key is used for the same thing in every log line.

func ChargeRef(ref string) zap.Field {
	return zap.String("chargeRef", ref)
}

func UserID(id string) zap.Field {
	return zap.String("userID", id)
}

func Feature[T ~string](feature T) zap.Field {
	return zap.String("feature", string(feature))
}

func Kind[T ~string](kind T) zap.Field {
	return zap.String("kind", string(kind))
}

func ResourceKey(key string) zap.Field {
	return zap.String("key", key)
}

func Source(name string) zap.Field {
	return zap.String("source", name)
}
