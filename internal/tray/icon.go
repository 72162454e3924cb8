package tray

// iconData is a 16x16 crosshair PNG shown in the system tray.
var iconData = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0xf3, 0xff, 0x61, 0x00, 0x00, 0x00,
	0x2a, 0x49, 0x44, 0x41, 0x54, 0x78, 0xda, 0x63, 0x60, 0xc0, 0x03, 0xf4,
	0xce, 0x38, 0xfc, 0x07, 0x61, 0x06, 0x72, 0xc1, 0xa8, 0x01, 0x54, 0x30,
	0x80, 0x24, 0x5b, 0xd0, 0x31, 0xd1, 0xea, 0x28, 0x36, 0x80, 0x2e, 0xde,
	0x1b, 0x35, 0x80, 0xc6, 0x06, 0x00, 0x00, 0x98, 0x90, 0x6a, 0xb1, 0x8e,
	0x55, 0xc2, 0xf7, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}
