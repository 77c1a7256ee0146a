package protocol

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const envelopeArity = 5

// EncodeEnvelope writes env to w as a five-entry msgpack map keyed
// "stanzaId", "conversationId", "type", "meta" and "body" — the decoder
// accepts the keys in any order as long as "type" precedes "body".
// body is itself encoded as a map carrying every field name the catalogue
// declares for env.Type, with Nil() standing in for any absent optional.
func EncodeEnvelope(w io.Writer, env Envelope) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeMapLen(envelopeArity); err != nil {
		return err
	}
	if err := enc.EncodeString("stanzaId"); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(env.StanzaID)); err != nil {
		return err
	}
	if err := enc.EncodeString("conversationId"); err != nil {
		return err
	}
	if env.ConversationID == nil {
		if err := enc.EncodeNil(); err != nil {
			return err
		}
	} else if err := enc.EncodeString(*env.ConversationID); err != nil {
		return err
	}
	if err := enc.EncodeString("type"); err != nil {
		return err
	}
	if err := enc.EncodeUint(uint64(env.Type)); err != nil {
		return err
	}
	if err := enc.EncodeString("meta"); err != nil {
		return err
	}
	if env.Meta == nil {
		if err := enc.EncodeNil(); err != nil {
			return err
		}
	} else if err := encodeValue(enc, Map(env.Meta)); err != nil {
		return err
	}
	if err := enc.EncodeString("body"); err != nil {
		return err
	}
	if env.Body == nil {
		return newDecodeErr(ErrMalformedEnvelope, "body", "envelope has no body")
	}
	fields := env.Body.ToFields()
	if err := enc.EncodeMapLen(len(fields)); err != nil {
		return err
	}
	for k, v := range fields {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := encodeValue(enc, v); err != nil {
			return err
		}
	}
	return nil
}

// decodeBodyFieldMap decodes the body's top-level map, keeping nil-valued
// entries so callers can measure the wire arity (a present-but-nil optional
// counts toward arity the same as any other field).
func decodeBodyFieldMap(dec *msgpack.Decoder) (Fields, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, wrapDecodeErr(ErrMalformedEnvelope, "body", "body is not a map", err)
	}
	if n < 0 {
		return Fields{}, nil
	}
	fields := make(Fields, n)
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return nil, wrapDecodeErr(ErrMalformedEnvelope, "body", "body field key is not a string", err)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, wrapDecodeErr(ErrMalformedEnvelope, key, "could not decode field value", err)
		}
		fields[key] = val
	}
	return fields, nil
}

// DecodeEnvelope reads one five-entry envelope map from r — keyed
// "stanzaId", "conversationId", "type", "meta", "body", in any order except
// that "body" must come after "type" (otherwise ErrMalformedEnvelope) —
// validates its top-level and body arity, and dispatches to the catalogue
// entry for its type to build a typed Body.
func DecodeEnvelope(r io.Reader) (Envelope, error) {
	dec := msgpack.NewDecoder(r)

	n, err := dec.DecodeMapLen()
	if err != nil {
		return Envelope{}, wrapDecodeErr(ErrMalformedEnvelope, "", "envelope is not a map", err)
	}
	if n != envelopeArity {
		return Envelope{}, newDecodeErr(ErrMalformedEnvelope, "", "envelope must have exactly 5 fields")
	}

	var (
		haveStanzaID, haveConvID, haveType, haveMeta, haveBody bool
		stanzaID                                               int64
		convRaw, metaRaw                                       Value
		typeNum                                                uint64
		bodyFields                                             Fields
	)

	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return Envelope{}, wrapDecodeErr(ErrMalformedEnvelope, "", "envelope key is not a string", err)
		}
		switch key {
		case "stanzaId":
			if stanzaID, err = dec.DecodeInt64(); err != nil {
				return Envelope{}, wrapDecodeErr(ErrMalformedEnvelope, "stanzaId", "stanzaId is not an integer", err)
			}
			haveStanzaID = true

		case "conversationId":
			if convRaw, err = decodeValue(dec); err != nil {
				return Envelope{}, wrapDecodeErr(ErrMalformedEnvelope, "conversationId", "could not decode conversationId", err)
			}
			haveConvID = true

		case "type":
			if typeNum, err = dec.DecodeUint64(); err != nil {
				return Envelope{}, wrapDecodeErr(ErrMalformedEnvelope, "type", "type is not an integer", err)
			}
			haveType = true

		case "meta":
			if metaRaw, err = decodeValue(dec); err != nil {
				return Envelope{}, wrapDecodeErr(ErrMalformedEnvelope, "meta", "could not decode meta", err)
			}
			haveMeta = true

		case "body":
			if !haveType {
				return Envelope{}, newDecodeErr(ErrMalformedEnvelope, "body", "body appears before type")
			}
			if bodyFields, err = decodeBodyFieldMap(dec); err != nil {
				return Envelope{}, err
			}
			haveBody = true

		default:
			return Envelope{}, newDecodeErr(ErrMalformedEnvelope, key, "unexpected envelope key")
		}
	}
	if !haveStanzaID || !haveConvID || !haveType || !haveMeta || !haveBody {
		return Envelope{}, newDecodeErr(ErrMalformedEnvelope, "", "envelope is missing one of its five keys")
	}

	id32, err := narrowInt32("stanzaId", stanzaID)
	if err != nil {
		return Envelope{}, err
	}
	if id32 == 0 {
		return Envelope{}, newDecodeErr(ErrMalformedEnvelope, "stanzaId", "stanzaId 0 is reserved")
	}

	var env Envelope
	env.StanzaID = id32

	if !convRaw.IsNil() {
		s, ok := convRaw.String()
		if !ok {
			return Envelope{}, newDecodeErr(ErrFieldTypeMismatch, "conversationId", "expected string or nil")
		}
		env.ConversationID = &s
	}

	env.Type = MessageType(typeNum)

	if !metaRaw.IsNil() {
		m, ok := metaRaw.Map()
		if !ok {
			return Envelope{}, newDecodeErr(ErrFieldTypeMismatch, "meta", "expected map or nil")
		}
		env.Meta = m
	}

	entry, ok := lookupCatalogue(env.Type)
	if !ok {
		return Envelope{}, newDecodeErr(ErrUnknownType, "type", "unrecognized message type")
	}

	if len(bodyFields) < entry.arity {
		return Envelope{}, newDecodeErr(ErrMalformedEnvelope, "body", "body arity below the type's fixed field count")
	}

	body, err := entry.fromFields(bodyFields)
	if err != nil {
		return Envelope{}, err
	}
	env.Body = body

	return env, nil
}
