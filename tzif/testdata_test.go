package tzif

// honolulu is example B.2 of RFC 8536, a version 2 file for
// Pacific/Honolulu.
var honolulu = []byte{
	// v1 header
	0x54, 0x5a, 0x69, 0x66, // magic
	0x32, // version
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x06, // isutcnt
	0x00, 0x00, 0x00, 0x06, // isstdcnt
	0x00, 0x00, 0x00, 0x00, // leapcnt
	0x00, 0x00, 0x00, 0x07, // timecnt
	0x00, 0x00, 0x00, 0x06, // typecnt
	0x00, 0x00, 0x00, 0x14, // charcnt
	// v1 block
	0x80, 0x00, 0x00, 0x00, // trans time[0]
	0xbb, 0x05, 0x43, 0x48, // trans time[1]
	0xbb, 0x21, 0x71, 0x58, // trans time[2]
	0xcb, 0x89, 0x3d, 0xc8, // trans time[3]
	0xd2, 0x23, 0xf4, 0x70, // trans time[4]
	0xd2, 0x61, 0x49, 0x38, // trans time[5]
	0xd5, 0x8d, 0x73, 0x48, // trans time[6]
	0x01, // trans type[0]
	0x02, // trans type[1]
	0x01, // trans type[2]
	0x03, // trans type[3]
	0x04, // trans type[4]
	0x01, // trans type[5]
	0x05, // trans type[6]
	// localtimetype[0]
	0xff, 0xff, 0x6c, 0x02, // utcoff
	0x00, // isdst
	0x00, // desigidx
	// localtimetype[1]
	0xff, 0xff, 0x6c, 0x58, // utcoff
	0x00, // isdst
	0x04, // desigidx
	// localtimetype[2]
	0xff, 0xff, 0x7a, 0x68, // utcoff
	0x01, // isdst
	0x08, // desigidx
	// localtimetype[3]
	0xff, 0xff, 0x7a, 0x68, // utcoff
	0x01, // isdst
	0x0c, // desigidx
	// localtimetype[4]
	0xff, 0xff, 0x7a, 0x68, // utcoff
	0x01, // isdst
	0x10, // desigidx
	// localtimetype[5]
	0xff, 0xff, 0x73, 0x60, // utcoff
	0x00,                   // isdst
	0x04,                   // desigidx
	0x4c, 0x4d, 0x54, 0x00, // designations[0]
	0x48, 0x53, 0x54, 0x00, // designations[4]
	0x48, 0x44, 0x54, 0x00, // designations[8]
	0x48, 0x57, 0x54, 0x00, // designations[12]
	0x48, 0x50, 0x54, 0x00, // designations[16]
	0x01, // UT/local[0]
	0x00, // UT/local[1]
	0x00, // UT/local[2]
	0x00, // UT/local[3]
	0x01, // UT/local[4]
	0x00, // UT/local[5]
	0x01, // standard/wall[0]
	0x00, // standard/wall[1]
	0x00, // standard/wall[2]
	0x00, // standard/wall[3]
	0x01, // standard/wall[4]
	0x00, // standard/wall[5]
	// v2 header
	0x54, 0x5a, 0x69, 0x66, // magic
	0x32, // version
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x06, // isutcnt
	0x00, 0x00, 0x00, 0x06, // isstdcnt
	0x00, 0x00, 0x00, 0x00, // leapcnt
	0x00, 0x00, 0x00, 0x07, // timecnt
	0x00, 0x00, 0x00, 0x06, // typecnt
	0x00, 0x00, 0x00, 0x14, // charcnt
	// v2 block
	0xff, 0xff, 0xff, 0xff, // trans time[0]
	0x74, 0xe0, 0x70, 0xbe,
	0xff, 0xff, 0xff, 0xff, // trans time[1]
	0xbb, 0x05, 0x43, 0x48,
	0xff, 0xff, 0xff, 0xff, // trans time[2]
	0xbb, 0x21, 0x71, 0x58,
	0xff, 0xff, 0xff, 0xff, // trans time[3]
	0xcb, 0x89, 0x3d, 0xc8,
	0xff, 0xff, 0xff, 0xff, // trans time[4]
	0xd2, 0x23, 0xf4, 0x70,
	0xff, 0xff, 0xff, 0xff, // trans time[5]
	0xd2, 0x61, 0x49, 0x38,
	0xff, 0xff, 0xff, 0xff, // trans time[6]
	0xd5, 0x8d, 0x73, 0x48,
	0x01, // trans type[0]
	0x02, // trans type[1]
	0x01, // trans type[2]
	0x03, // trans type[3]
	0x04, // trans type[4]
	0x01, // trans type[5]
	0x05, // trans type[6]
	// localtimetype[0]
	0xff, 0xff, 0x6c, 0x02, // utcoff
	0x00, // isdst
	0x00, // desigidx
	// localtimetype[1]
	0xff, 0xff, 0x6c, 0x58, // utcoff
	0x00, // isdst
	0x04, // desigidx
	// localtimetype[2]
	0xff, 0xff, 0x7a, 0x68, // utcoff
	0x01, // isdst
	0x08, // desigidx
	// localtimetype[3]
	0xff, 0xff, 0x7a, 0x68, // utcoff
	0x01, // isdst
	0x0c, // desigidx
	// localtimetype[4]
	0xff, 0xff, 0x7a, 0x68, // utcoff
	0x01, // isdst
	0x10, // desigidx
	// localtimetype[5]
	0xff, 0xff, 0x73, 0x60, // utcoff
	0x00,                   // isdst
	0x04,                   // desigidx
	0x4c, 0x4d, 0x54, 0x00, // designations[0]
	0x48, 0x53, 0x54, 0x00, // designations[4]
	0x48, 0x44, 0x54, 0x00, // designations[8]
	0x48, 0x57, 0x54, 0x00, // designations[12]
	0x48, 0x50, 0x54, 0x00, // designations[16]
	0x00, // UT/local[0]
	0x00, // UT/local[1]
	0x00, // UT/local[2]
	0x00, // UT/local[3]
	0x01, // UT/local[4]
	0x00, // UT/local[5]
	0x00, // standard/wall[0]
	0x00, // standard/wall[1]
	0x00, // standard/wall[2]
	0x00, // standard/wall[3]
	0x01, // standard/wall[4]
	0x00, // standard/wall[5]
	// v2 footer
	0x0a,                   // NL
	0x48, 0x53, 0x54, 0x31, // TZ string
	0x30,
	0x0a, // NL
}
